package service

import (
	"context"
	"errors"

	"github.com/campuslog/page-share-service/internal/domain"
	"github.com/campuslog/page-share-service/internal/dto"
	"github.com/campuslog/page-share-service/pkg/app"
	"github.com/campuslog/page-share-service/pkg/code"
	"github.com/campuslog/page-share-service/pkg/timex"
	"github.com/campuslog/page-share-service/pkg/util"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService 定义用户业务服务接口
type UserService interface {
	// Register 用户注册
	Register(ctx context.Context, params *dto.UserCreateRequest) (*dto.UserDTO, error)

	// Login 用户登录
	Login(ctx context.Context, params *dto.UserLoginRequest, clientIP string) (*dto.UserDTO, error)

	// GetInfo 获取用户信息
	GetInfo(ctx context.Context, uid int64) (*dto.UserDTO, error)
}

// userService 实现 UserService 接口
type userService struct {
	userRepo     domain.UserRepository
	tokenManager app.TokenManager
	logger       *zap.Logger
	config       *ServiceConfig
}

// NewUserService 创建 UserService 实例
func NewUserService(userRepo domain.UserRepository, tokenManager app.TokenManager, logger *zap.Logger, config *ServiceConfig) UserService {
	return &userService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
		logger:       logger,
		config:       config,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *userService) domainToDTO(user *domain.User) *dto.UserDTO {
	if user == nil {
		return nil
	}
	return &dto.UserDTO{
		UID:       user.UID,
		Email:     user.Email,
		Username:  user.Username,
		Token:     user.Token,
		UpdatedAt: timex.Time(user.UpdatedAt),
		CreatedAt: timex.Time(user.CreatedAt),
	}
}

// Register 用户注册
func (s *userService) Register(ctx context.Context, params *dto.UserCreateRequest) (*dto.UserDTO, error) {
	// 检查注册是否启用
	if s.config == nil || !s.config.User.RegisterIsEnable {
		return nil, code.ErrorUserRegisterIsDisable
	}

	// 验证密码一致性
	if params.Password != params.ConfirmPassword {
		return nil, code.ErrorUserPasswordNotMatch
	}

	// 检查邮箱是否已存在
	emailUser, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery
	}
	if emailUser != nil {
		return nil, code.ErrorUserEmailAlreadyExists
	}

	// 检查用户名是否已存在
	nameUser, err := s.userRepo.GetByUsername(ctx, params.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery
	}
	if nameUser != nil {
		return nil, code.ErrorUserAlreadyExists
	}

	// 生成密码哈希
	password, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return nil, code.ErrorPasswordNotValid
	}

	// 创建用户
	newUser := &domain.User{
		Username: params.Username,
		Email:    params.Email,
		Password: password,
	}

	user, err := s.userRepo.Create(ctx, newUser)
	if err != nil {
		return nil, code.ErrorUserRegister.WithDetails(err.Error())
	}

	s.logger.Info("user registered",
		zap.Int64("uid", user.UID),
		zap.String("username", user.Username))

	return s.domainToDTO(user), nil
}

// Login 用户登录
// Credentials 优先按邮箱解析，其次按用户名
func (s *userService) Login(ctx context.Context, params *dto.UserLoginRequest, clientIP string) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByEmail(ctx, params.Credentials)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorDBQuery
		}
		user, err = s.userRepo.GetByUsername(ctx, params.Credentials)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, code.ErrorUserNotExist
			}
			return nil, code.ErrorDBQuery
		}
	}

	if !util.CheckPasswordHash(user.Password, params.Password) {
		return nil, code.ErrorUserPasswordError
	}

	token, err := s.tokenManager.Generate(user.UID, user.Username, clientIP)
	if err != nil {
		return nil, code.ErrorUserLogin.WithDetails(err.Error())
	}
	user.Token = token

	return s.domainToDTO(user), nil
}

// GetInfo 获取用户信息
func (s *userService) GetInfo(ctx context.Context, uid int64) (*dto.UserDTO, error) {
	if uid == 0 {
		return nil, code.ErrorNotAuthorized
	}
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserNotExist
		}
		return nil, code.ErrorDBQuery
	}
	return s.domainToDTO(user), nil
}
