package dao

import (
	"context"
	"time"

	"github.com/campuslog/page-share-service/internal/domain"
	"github.com/campuslog/page-share-service/internal/model"
	"github.com/campuslog/page-share-service/pkg/timex"
)

// inviteRepository 实现 domain.InviteRepository 接口
type inviteRepository struct {
	dao *Dao
}

// NewInviteRepository 创建 InviteRepository 实例
func NewInviteRepository(dao *Dao) domain.InviteRepository {
	return &inviteRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *inviteRepository) toDomain(m *model.GroupInvite) *domain.Invite {
	if m == nil {
		return nil
	}
	return &domain.Invite{
		ID:        m.ID,
		UID:       m.UID,
		GroupID:   m.GroupID,
		CreatedAt: time.Time(m.CreatedAt),
	}
}

// GetByID 根据ID获取邀请
func (r *inviteRepository) GetByID(ctx context.Context, id int64) (*domain.Invite, error) {
	var m model.GroupInvite
	if err := r.dao.orm(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByUIDAndGroup 根据 (用户, 群组) 组合获取待处理邀请
func (r *inviteRepository) GetByUIDAndGroup(ctx context.Context, uid, groupID int64) (*domain.Invite, error) {
	var m model.GroupInvite
	if err := r.dao.orm(ctx).Where("uid = ? AND group_id = ?", uid, groupID).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建邀请
func (r *inviteRepository) Create(ctx context.Context, invite *domain.Invite) (*domain.Invite, error) {
	m := &model.GroupInvite{
		UID:       invite.UID,
		GroupID:   invite.GroupID,
		CreatedAt: timex.Now(),
	}
	if err := r.dao.orm(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Delete 删除邀请
func (r *inviteRepository) Delete(ctx context.Context, id int64) error {
	return r.dao.orm(ctx).Where("id = ?", id).Delete(&model.GroupInvite{}).Error
}

// ListByGroupID 获取群组的全部待处理邀请
func (r *inviteRepository) ListByGroupID(ctx context.Context, groupID int64) ([]*domain.Invite, error) {
	var models []*model.GroupInvite
	if err := r.dao.orm(ctx).Where("group_id = ?", groupID).Find(&models).Error; err != nil {
		return nil, err
	}
	invites := make([]*domain.Invite, 0, len(models))
	for _, m := range models {
		invites = append(invites, r.toDomain(m))
	}
	return invites, nil
}

// ListByUID 获取用户的全部待处理邀请
func (r *inviteRepository) ListByUID(ctx context.Context, uid int64) ([]*domain.Invite, error) {
	var models []*model.GroupInvite
	if err := r.dao.orm(ctx).Where("uid = ?", uid).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	invites := make([]*domain.Invite, 0, len(models))
	for _, m := range models {
		invites = append(invites, r.toDomain(m))
	}
	return invites, nil
}

var _ domain.InviteRepository = (*inviteRepository)(nil)
