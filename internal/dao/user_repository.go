package dao

import (
	"context"
	"time"

	"github.com/campuslog/page-share-service/internal/domain"
	"github.com/campuslog/page-share-service/internal/model"
	"github.com/campuslog/page-share-service/pkg/timex"
)

// userRepository 实现 domain.UserRepository 接口
type userRepository struct {
	dao *Dao
}

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(dao *Dao) domain.UserRepository {
	return &userRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *userRepository) toDomain(m *model.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		UID:       m.UID,
		Email:     m.Email,
		Username:  m.Username,
		Password:  m.Password,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

// GetByUID 根据UID获取用户
func (r *userRepository) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	var m model.User
	if err := r.dao.orm(ctx).Where("uid = ?", uid).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByEmail 根据邮箱获取用户
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m model.User
	if err := r.dao.orm(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByUsername 根据用户名获取用户
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var m model.User
	if err := r.dao.orm(ctx).Where("username = ?", username).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := timex.Now()
	m := &model.User{
		Email:     user.Email,
		Username:  user.Username,
		Password:  user.Password,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.dao.orm(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// ListByUIDs 根据UID集合批量获取用户
func (r *userRepository) ListByUIDs(ctx context.Context, uids []int64) ([]*domain.User, error) {
	if len(uids) == 0 {
		return nil, nil
	}
	var models []*model.User
	if err := r.dao.orm(ctx).Where("uid IN ?", uids).Find(&models).Error; err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(models))
	for _, m := range models {
		users = append(users, r.toDomain(m))
	}
	return users, nil
}

var _ domain.UserRepository = (*userRepository)(nil)
