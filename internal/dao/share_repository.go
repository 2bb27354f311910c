package dao

import (
	"context"
	"errors"

	"github.com/campuslog/page-share-service/internal/domain"
	"github.com/campuslog/page-share-service/internal/model"
	"github.com/campuslog/page-share-service/pkg/timex"

	"gorm.io/gorm"
)

// shareRepository 实现 domain.ShareRepository 接口
// page_share 连接表是分享关系的唯一事实来源
type shareRepository struct {
	dao *Dao
}

// NewShareRepository 创建 ShareRepository 实例
func NewShareRepository(dao *Dao) domain.ShareRepository {
	return &shareRepository{dao: dao}
}

// Add 添加分享关系，重复添加为无操作
func (r *shareRepository) Add(ctx context.Context, pageID int64, target domain.ShareTarget) error {
	var m model.PageShare
	err := r.dao.orm(ctx).
		Where("page_id = ? AND target_kind = ? AND target_id = ?", pageID, string(target.Kind), target.ID).
		First(&m).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.dao.orm(ctx).Create(&model.PageShare{
		PageID:     pageID,
		TargetKind: string(target.Kind),
		TargetID:   target.ID,
		CreatedAt:  timex.Now(),
	}).Error
}

// Remove 移除分享关系
func (r *shareRepository) Remove(ctx context.Context, pageID int64, target domain.ShareTarget) error {
	return r.dao.orm(ctx).
		Where("page_id = ? AND target_kind = ? AND target_id = ?", pageID, string(target.Kind), target.ID).
		Delete(&model.PageShare{}).Error
}

// Exists 判断分享关系是否存在
func (r *shareRepository) Exists(ctx context.Context, pageID int64, target domain.ShareTarget) (bool, error) {
	var count int64
	err := r.dao.orm(ctx).Model(&model.PageShare{}).
		Where("page_id = ? AND target_kind = ? AND target_id = ?", pageID, string(target.Kind), target.ID).
		Count(&count).Error
	return count > 0, err
}

// ListTargets 获取页面的全部分享对象
func (r *shareRepository) ListTargets(ctx context.Context, pageID int64) ([]domain.ShareTarget, error) {
	var models []*model.PageShare
	if err := r.dao.orm(ctx).Where("page_id = ?", pageID).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	targets := make([]domain.ShareTarget, 0, len(models))
	for _, m := range models {
		targets = append(targets, domain.ShareTarget{
			Kind: domain.TargetKind(m.TargetKind),
			ID:   m.TargetID,
		})
	}
	return targets, nil
}

// ListGroupIDs 获取页面分享到的群组ID集合
func (r *shareRepository) ListGroupIDs(ctx context.Context, pageID int64) ([]int64, error) {
	var gids []int64
	err := r.dao.orm(ctx).Model(&model.PageShare{}).
		Where("page_id = ? AND target_kind = ?", pageID, string(domain.TargetKindGroup)).
		Pluck("target_id", &gids).Error
	return gids, err
}

// ListPageIDs 获取分享给任意一个对象的页面ID集合
func (r *shareRepository) ListPageIDs(ctx context.Context, targets []domain.ShareTarget) ([]int64, error) {
	if len(targets) == 0 {
		return nil, nil
	}

	q := r.dao.orm(ctx).Model(&model.PageShare{})
	cond := r.dao.orm(ctx).Model(&model.PageShare{})
	for i, t := range targets {
		if i == 0 {
			cond = r.dao.orm(ctx).Where("target_kind = ? AND target_id = ?", string(t.Kind), t.ID)
		} else {
			cond = cond.Or(r.dao.orm(ctx).Where("target_kind = ? AND target_id = ?", string(t.Kind), t.ID))
		}
	}

	var pageIDs []int64
	err := q.Where(cond).Distinct("page_id").Pluck("page_id", &pageIDs).Error
	return pageIDs, err
}

// DeleteByPageID 删除页面的全部分享关系
func (r *shareRepository) DeleteByPageID(ctx context.Context, pageID int64) error {
	return r.dao.orm(ctx).Where("page_id = ?", pageID).Delete(&model.PageShare{}).Error
}

// DeleteByTarget 删除分享对象名下的全部分享关系
func (r *shareRepository) DeleteByTarget(ctx context.Context, target domain.ShareTarget) error {
	return r.dao.orm(ctx).
		Where("target_kind = ? AND target_id = ?", string(target.Kind), target.ID).
		Delete(&model.PageShare{}).Error
}

var _ domain.ShareRepository = (*shareRepository)(nil)
