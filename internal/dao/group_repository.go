package dao

import (
	"context"
	"errors"
	"time"

	"github.com/campuslog/page-share-service/internal/domain"
	"github.com/campuslog/page-share-service/internal/model"
	"github.com/campuslog/page-share-service/pkg/timex"

	"gorm.io/gorm"
)

// groupRepository 实现 domain.GroupRepository 接口
type groupRepository struct {
	dao *Dao
}

// NewGroupRepository 创建 GroupRepository 实例
func NewGroupRepository(dao *Dao) domain.GroupRepository {
	return &groupRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *groupRepository) toDomain(m *model.Group) *domain.Group {
	if m == nil {
		return nil
	}
	return &domain.Group{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

// GetByID 根据ID获取群组
func (r *groupRepository) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	var m model.Group
	if err := r.dao.orm(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByName 根据名称获取群组
func (r *groupRepository) GetByName(ctx context.Context, name string) (*domain.Group, error) {
	var m model.Group
	if err := r.dao.orm(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建群组
func (r *groupRepository) Create(ctx context.Context, group *domain.Group) (*domain.Group, error) {
	now := timex.Now()
	m := &model.Group{
		Name:      group.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.dao.orm(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Delete 物理删除群组
func (r *groupRepository) Delete(ctx context.Context, id int64) error {
	return r.dao.orm(ctx).Where("id = ?", id).Delete(&model.Group{}).Error
}

// AddMember 添加成员
// 重复添加为无操作，成员集合无重复
func (r *groupRepository) AddMember(ctx context.Context, groupID, uid int64) error {
	var m model.GroupMember
	err := r.dao.orm(ctx).Where("group_id = ? AND uid = ?", groupID, uid).First(&m).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.dao.orm(ctx).Create(&model.GroupMember{
		GroupID:   groupID,
		UID:       uid,
		CreatedAt: timex.Now(),
	}).Error
}

// RemoveMember 移除成员
func (r *groupRepository) RemoveMember(ctx context.Context, groupID, uid int64) error {
	return r.dao.orm(ctx).Where("group_id = ? AND uid = ?", groupID, uid).Delete(&model.GroupMember{}).Error
}

// IsMember 判断用户是否为群组成员
func (r *groupRepository) IsMember(ctx context.Context, groupID, uid int64) (bool, error) {
	var count int64
	err := r.dao.orm(ctx).Model(&model.GroupMember{}).
		Where("group_id = ? AND uid = ?", groupID, uid).
		Count(&count).Error
	return count > 0, err
}

// IsMemberOfAny 判断用户是否属于任意一个群组
func (r *groupRepository) IsMemberOfAny(ctx context.Context, uid int64, groupIDs []int64) (bool, error) {
	if len(groupIDs) == 0 {
		return false, nil
	}
	var count int64
	err := r.dao.orm(ctx).Model(&model.GroupMember{}).
		Where("uid = ? AND group_id IN ?", uid, groupIDs).
		Count(&count).Error
	return count > 0, err
}

// MemberUIDs 获取群组全部成员UID
func (r *groupRepository) MemberUIDs(ctx context.Context, groupID int64) ([]int64, error) {
	var uids []int64
	err := r.dao.orm(ctx).Model(&model.GroupMember{}).
		Where("group_id = ?", groupID).
		Order("created_at ASC").
		Pluck("uid", &uids).Error
	return uids, err
}

// MemberCount 获取群组成员数量
func (r *groupRepository) MemberCount(ctx context.Context, groupID int64) (int64, error) {
	var count int64
	err := r.dao.orm(ctx).Model(&model.GroupMember{}).
		Where("group_id = ?", groupID).
		Count(&count).Error
	return count, err
}

// ListByUID 获取用户所属的全部群组
func (r *groupRepository) ListByUID(ctx context.Context, uid int64) ([]*domain.Group, error) {
	var gids []int64
	if err := r.dao.orm(ctx).Model(&model.GroupMember{}).
		Where("uid = ?", uid).
		Pluck("group_id", &gids).Error; err != nil {
		return nil, err
	}
	if len(gids) == 0 {
		return nil, nil
	}

	var models []*model.Group
	if err := r.dao.orm(ctx).Where("id IN ?", gids).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	groups := make([]*domain.Group, 0, len(models))
	for _, m := range models {
		groups = append(groups, r.toDomain(m))
	}
	return groups, nil
}

var _ domain.GroupRepository = (*groupRepository)(nil)
