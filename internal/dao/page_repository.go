package dao

import (
	"context"
	"time"

	"github.com/campuslog/page-share-service/internal/domain"
	"github.com/campuslog/page-share-service/internal/model"
	"github.com/campuslog/page-share-service/pkg/app"
	"github.com/campuslog/page-share-service/pkg/timex"

	"gorm.io/gorm"
)

// pageRepository 实现 domain.PageRepository 接口
type pageRepository struct {
	dao *Dao
}

// NewPageRepository 创建 PageRepository 实例
func NewPageRepository(dao *Dao) domain.PageRepository {
	return &pageRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *pageRepository) toDomain(m *model.Page) *domain.Page {
	if m == nil {
		return nil
	}
	return &domain.Page{
		ID:        m.ID,
		UID:       m.UID,
		Title:     m.Title,
		Content:   m.Content,
		ViewCount: m.ViewCount,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

// GetByID 根据ID获取页面
func (r *pageRepository) GetByID(ctx context.Context, id int64) (*domain.Page, error) {
	var m model.Page
	if err := r.dao.orm(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建页面
func (r *pageRepository) Create(ctx context.Context, page *domain.Page) (*domain.Page, error) {
	now := timex.Now()
	m := &model.Page{
		UID:       page.UID,
		Title:     page.Title,
		Content:   page.Content,
		ViewCount: 0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.dao.orm(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update 更新页面标题和内容并刷新修改时间
func (r *pageRepository) Update(ctx context.Context, page *domain.Page) error {
	return r.dao.orm(ctx).Model(&model.Page{}).
		Where("id = ?", page.ID).
		Updates(map[string]interface{}{
			"title":      page.Title,
			"content":    page.Content,
			"updated_at": timex.Now(),
		}).Error
}

// IncrementViewCount 浏览计数加一
// 单条 UPDATE 表达式自增，并发访问不会丢失计数
func (r *pageRepository) IncrementViewCount(ctx context.Context, id int64) error {
	return r.dao.orm(ctx).Model(&model.Page{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + ?", 1)).Error
}

// Delete 物理删除页面
func (r *pageRepository) Delete(ctx context.Context, id int64) error {
	return r.dao.orm(ctx).Where("id = ?", id).Delete(&model.Page{}).Error
}

// ListByUID 分页获取用户拥有的页面
func (r *pageRepository) ListByUID(ctx context.Context, uid int64, page, pageSize int) ([]*domain.Page, int64, error) {
	q := r.dao.orm(ctx).Model(&model.Page{}).Where("uid = ?", uid)

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var models []*model.Page
	if err := q.Order("updated_at DESC").
		Limit(pageSize).
		Offset(app.GetPageOffset(page, pageSize)).
		Find(&models).Error; err != nil {
		return nil, 0, err
	}

	pages := make([]*domain.Page, 0, len(models))
	for _, m := range models {
		pages = append(pages, r.toDomain(m))
	}
	return pages, count, nil
}

// ListByIDs 分页获取指定ID集合的页面
func (r *pageRepository) ListByIDs(ctx context.Context, ids []int64, page, pageSize int) ([]*domain.Page, int64, error) {
	if len(ids) == 0 {
		return nil, 0, nil
	}
	q := r.dao.orm(ctx).Model(&model.Page{}).Where("id IN ?", ids)

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var models []*model.Page
	if err := q.Order("updated_at DESC").
		Limit(pageSize).
		Offset(app.GetPageOffset(page, pageSize)).
		Find(&models).Error; err != nil {
		return nil, 0, err
	}

	pages := make([]*domain.Page, 0, len(models))
	for _, m := range models {
		pages = append(pages, r.toDomain(m))
	}
	return pages, count, nil
}

var _ domain.PageRepository = (*pageRepository)(nil)
