package service

import (
	"context"
	"errors"
	"testing"

	"github.com/campuslog/page-share-service/internal/domain"
	"github.com/campuslog/page-share-service/internal/dto"
	"github.com/campuslog/page-share-service/pkg/app"
	"github.com/campuslog/page-share-service/pkg/code"
	"github.com/campuslog/page-share-service/pkg/util"
	"go.uber.org/zap"
)

type mockTokenManager struct {
	app.TokenManager
}

func (mockTokenManager) Generate(uid int64, nickname, ip string) (string, error) {
	return "test-token", nil
}

func newUserServiceForTest(userRepo *mockUserRepo, registerEnabled bool) *userService {
	return &userService{
		userRepo:     userRepo,
		tokenManager: mockTokenManager{},
		logger:       zap.NewNop(),
		config:       &ServiceConfig{User: UserServiceConfig{RegisterIsEnable: registerEnabled}},
	}
}

func TestUserRegister(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		enabled bool
		params  *dto.UserCreateRequest
		wantErr error
	}{
		{
			name:    "register disabled",
			enabled: false,
			params:  &dto.UserCreateRequest{Email: "a@example.com", Username: "a", Password: "p1", ConfirmPassword: "p1"},
			wantErr: code.ErrorUserRegisterIsDisable,
		},
		{
			name:    "password mismatch",
			enabled: true,
			params:  &dto.UserCreateRequest{Email: "a@example.com", Username: "a", Password: "p1", ConfirmPassword: "p2"},
			wantErr: code.ErrorUserPasswordNotMatch,
		},
		{
			name:    "email taken",
			enabled: true,
			params:  &dto.UserCreateRequest{Email: "taken@example.com", Username: "a", Password: "p1", ConfirmPassword: "p1"},
			wantErr: code.ErrorUserEmailAlreadyExists,
		},
		{
			name:    "username taken",
			enabled: true,
			params:  &dto.UserCreateRequest{Email: "a@example.com", Username: "taken", Password: "p1", ConfirmPassword: "p1"},
			wantErr: code.ErrorUserAlreadyExists,
		},
		{
			name:    "success",
			enabled: true,
			params:  &dto.UserCreateRequest{Email: "a@example.com", Username: "a", Password: "p1", ConfirmPassword: "p1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := &mockUserRepo{users: []*domain.User{
				{UID: 1, Email: "taken@example.com", Username: "taken"},
			}}
			svc := newUserServiceForTest(userRepo, tt.enabled)

			got, err := svc.Register(ctx, tt.params)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Register() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && (got == nil || got.UID == 0) {
				t.Errorf("Register() = %+v, want created user", got)
			}
		})
	}
}

func TestUserLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := util.GeneratePasswordHash("secret")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	userRepo := &mockUserRepo{users: []*domain.User{
		{UID: 1, Email: "a@example.com", Username: "alice", Password: hash},
	}}
	svc := newUserServiceForTest(userRepo, true)

	tests := []struct {
		name        string
		credentials string
		password    string
		wantErr     error
	}{
		{name: "login by email", credentials: "a@example.com", password: "secret"},
		{name: "login by username", credentials: "alice", password: "secret"},
		{name: "wrong password", credentials: "alice", password: "nope", wantErr: code.ErrorUserPasswordError},
		{name: "unknown user", credentials: "nobody", password: "secret", wantErr: code.ErrorUserNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Login(ctx, &dto.UserLoginRequest{Credentials: tt.credentials, Password: tt.password}, "127.0.0.1")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Login() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && got.Token != "test-token" {
				t.Errorf("Login() token = %q, want issued token", got.Token)
			}
		})
	}
}
