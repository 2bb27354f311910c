package service

import (
	"context"
	"errors"

	"github.com/campuslog/page-share-service/internal/domain"
	"github.com/campuslog/page-share-service/internal/dto"
	"github.com/campuslog/page-share-service/pkg/code"
	"github.com/campuslog/page-share-service/pkg/timex"
	"github.com/jinzhu/copier"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GroupService 定义群组业务服务接口
type GroupService interface {
	// Create 创建群组，群组名全局唯一，创建者自动成为首个成员
	Create(ctx context.Context, uid int64, params *dto.GroupCreateRequest) (*dto.GroupDTO, error)

	// ListMine 获取当前用户所在的群组
	ListMine(ctx context.Context, uid int64) ([]*dto.GroupDTO, error)

	// Members 获取群组成员列表，仅成员可见
	Members(ctx context.Context, uid, groupID int64) ([]*dto.MemberDTO, error)

	// Leave 退出群组
	// 最后一名成员退出后群组连同其邀请和分享授权一并删除
	Leave(ctx context.Context, uid, groupID int64) error
}

// groupService 实现 GroupService 接口
type groupService struct {
	groupRepo  domain.GroupRepository
	userRepo   domain.UserRepository
	inviteRepo domain.InviteRepository
	shareRepo  domain.ShareRepository
	transactor domain.Transactor
	logger     *zap.Logger
}

// NewGroupService 创建 GroupService 实例
func NewGroupService(
	groupRepo domain.GroupRepository,
	userRepo domain.UserRepository,
	inviteRepo domain.InviteRepository,
	shareRepo domain.ShareRepository,
	transactor domain.Transactor,
	logger *zap.Logger,
) GroupService {
	return &groupService{
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		inviteRepo: inviteRepo,
		shareRepo:  shareRepo,
		transactor: transactor,
		logger:     logger,
	}
}

// groupToDTO 将领域模型转换为 DTO
func groupToDTO(group *domain.Group, memberCount int64) *dto.GroupDTO {
	if group == nil {
		return nil
	}
	return &dto.GroupDTO{
		ID:          group.ID,
		Name:        group.Name,
		MemberCount: memberCount,
		CreatedAt:   timex.Time(group.CreatedAt),
	}
}

// Create 创建群组
func (s *groupService) Create(ctx context.Context, uid int64, params *dto.GroupCreateRequest) (*dto.GroupDTO, error) {
	if uid == 0 {
		return nil, code.ErrorNotAuthorized
	}

	_, err := s.groupRepo.GetByName(ctx, params.Name)
	if err == nil {
		return nil, code.ErrorGroupNameAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery
	}

	group := &domain.Group{Name: params.Name}
	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		created, err := s.groupRepo.Create(ctx, group)
		if err != nil {
			return err
		}
		group = created
		// 创建者即首个成员，群组不存在无成员的中间态
		return s.groupRepo.AddMember(ctx, group.ID, uid)
	})
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	s.logger.Info("group created",
		zap.Int64("uid", uid),
		zap.Int64("groupId", group.ID),
		zap.String("name", group.Name))

	return groupToDTO(group, 1), nil
}

// ListMine 获取当前用户所在的群组
func (s *groupService) ListMine(ctx context.Context, uid int64) ([]*dto.GroupDTO, error) {
	if uid == 0 {
		return nil, code.ErrorNotAuthorized
	}

	groups, err := s.groupRepo.ListByUID(ctx, uid)
	if err != nil {
		return nil, code.ErrorDBQuery
	}

	list := make([]*dto.GroupDTO, 0, len(groups))
	for _, g := range groups {
		count, err := s.groupRepo.MemberCount(ctx, g.ID)
		if err != nil {
			return nil, code.ErrorDBQuery
		}
		list = append(list, groupToDTO(g, count))
	}
	return list, nil
}

// Members 获取群组成员列表
func (s *groupService) Members(ctx context.Context, uid, groupID int64) ([]*dto.MemberDTO, error) {
	if uid == 0 {
		return nil, code.ErrorNotAuthorized
	}
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorGroupNotFound
		}
		return nil, code.ErrorDBQuery
	}

	ok, err := s.groupRepo.IsMember(ctx, groupID, uid)
	if err != nil {
		return nil, code.ErrorDBQuery
	}
	if !ok {
		return nil, code.ErrorNotGroupMember
	}

	uids, err := s.groupRepo.MemberUIDs(ctx, groupID)
	if err != nil {
		return nil, code.ErrorDBQuery
	}
	users, err := s.userRepo.ListByUIDs(ctx, uids)
	if err != nil {
		return nil, code.ErrorDBQuery
	}

	list := make([]*dto.MemberDTO, 0, len(users))
	for _, u := range users {
		member := &dto.MemberDTO{}
		if err := copier.Copy(member, u); err != nil {
			return nil, code.ErrorServerInternal
		}
		list = append(list, member)
	}
	return list, nil
}

// Leave 退出群组
func (s *groupService) Leave(ctx context.Context, uid, groupID int64) error {
	if uid == 0 {
		return code.ErrorNotAuthorized
	}
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorGroupNotFound
		}
		return code.ErrorDBQuery
	}

	ok, err := s.groupRepo.IsMember(ctx, groupID, uid)
	if err != nil {
		return code.ErrorDBQuery
	}
	if !ok {
		return code.ErrorNotGroupMember
	}

	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.groupRepo.RemoveMember(ctx, groupID, uid); err != nil {
			return err
		}

		count, err := s.groupRepo.MemberCount(ctx, groupID)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		// 空群组级联清理，不留下指向已删群组的邀请和授权
		invites, err := s.inviteRepo.ListByGroupID(ctx, groupID)
		if err != nil {
			return err
		}
		for _, invite := range invites {
			if err := s.inviteRepo.Delete(ctx, invite.ID); err != nil {
				return err
			}
		}
		if err := s.shareRepo.DeleteByTarget(ctx, domain.GroupTarget(groupID)); err != nil {
			return err
		}
		return s.groupRepo.Delete(ctx, groupID)
	})
	if err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	s.logger.Info("member left group",
		zap.Int64("uid", uid),
		zap.Int64("groupId", groupID))

	return nil
}
