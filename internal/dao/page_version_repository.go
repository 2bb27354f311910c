package dao

import (
	"context"
	"time"

	"github.com/campuslog/page-share-service/internal/domain"
	"github.com/campuslog/page-share-service/internal/model"
	"github.com/campuslog/page-share-service/pkg/app"
	"github.com/campuslog/page-share-service/pkg/timex"
)

// pageVersionRepository 实现 domain.PageVersionRepository 接口
type pageVersionRepository struct {
	dao *Dao
}

// NewPageVersionRepository 创建 PageVersionRepository 实例
func NewPageVersionRepository(dao *Dao) domain.PageVersionRepository {
	return &pageVersionRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *pageVersionRepository) toDomain(m *model.PageVersion) *domain.PageVersion {
	if m == nil {
		return nil
	}
	return &domain.PageVersion{
		ID:        m.ID,
		PageID:    m.PageID,
		Title:     m.Title,
		Content:   m.Content,
		SavedAt:   time.Time(m.SavedAt),
		CreatedAt: time.Time(m.CreatedAt),
	}
}

// GetByID 根据ID获取历史版本
func (r *pageVersionRepository) GetByID(ctx context.Context, id int64) (*domain.PageVersion, error) {
	var m model.PageVersion
	if err := r.dao.orm(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建历史版本
func (r *pageVersionRepository) Create(ctx context.Context, version *domain.PageVersion) (*domain.PageVersion, error) {
	m := &model.PageVersion{
		PageID:    version.PageID,
		Title:     version.Title,
		Content:   version.Content,
		SavedAt:   timex.Time(version.SavedAt),
		CreatedAt: timex.Now(),
	}
	if err := r.dao.orm(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Delete 删除指定历史版本
func (r *pageVersionRepository) Delete(ctx context.Context, id int64) error {
	return r.dao.orm(ctx).Where("id = ?", id).Delete(&model.PageVersion{}).Error
}

// DeleteByPageID 删除页面的全部历史版本
func (r *pageVersionRepository) DeleteByPageID(ctx context.Context, pageID int64) error {
	return r.dao.orm(ctx).Where("page_id = ?", pageID).Delete(&model.PageVersion{}).Error
}

// ListByPageID 分页获取页面的历史版本，新的在前
func (r *pageVersionRepository) ListByPageID(ctx context.Context, pageID int64, page, pageSize int) ([]*domain.PageVersion, int64, error) {
	q := r.dao.orm(ctx).Model(&model.PageVersion{}).Where("page_id = ?", pageID)

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var models []*model.PageVersion
	if err := q.Order("id DESC").
		Limit(pageSize).
		Offset(app.GetPageOffset(page, pageSize)).
		Find(&models).Error; err != nil {
		return nil, 0, err
	}

	versions := make([]*domain.PageVersion, 0, len(models))
	for _, m := range models {
		versions = append(versions, r.toDomain(m))
	}
	return versions, count, nil
}

// CountByPageID 获取页面的历史版本数量
func (r *pageVersionRepository) CountByPageID(ctx context.Context, pageID int64) (int64, error) {
	var count int64
	err := r.dao.orm(ctx).Model(&model.PageVersion{}).Where("page_id = ?", pageID).Count(&count).Error
	return count, err
}

var _ domain.PageVersionRepository = (*pageVersionRepository)(nil)
