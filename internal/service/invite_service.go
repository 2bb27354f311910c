package service

import (
	"context"
	"errors"
	"strings"

	"github.com/campuslog/page-share-service/internal/domain"
	"github.com/campuslog/page-share-service/internal/dto"
	"github.com/campuslog/page-share-service/pkg/code"
	"github.com/campuslog/page-share-service/pkg/timex"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InviteService 定义群组邀请业务服务接口
// 邀请是进入群组的唯一途径，同一 (用户, 群组) 组合最多存在一条待处理邀请
type InviteService interface {
	// Invite 批量邀请用户加入群组，仅群组成员可发起
	// 邀请自己、已是成员、已有待处理邀请或邮箱无法解析的候选人跳过并上报
	Invite(ctx context.Context, uid, groupID int64, candidates []string) (*dto.InviteResultDTO, error)

	// ListMine 获取当前用户的待处理邀请
	ListMine(ctx context.Context, uid int64) ([]*dto.InviteDTO, error)

	// Accept 接受邀请，成为群组成员并消费邀请
	Accept(ctx context.Context, uid, inviteID int64) error

	// Reject 拒绝邀请，仅删除邀请本身
	// 同一用户随后仍可再次被邀请
	Reject(ctx context.Context, uid, inviteID int64) error
}

// inviteService 实现 InviteService 接口
type inviteService struct {
	inviteRepo domain.InviteRepository
	groupRepo  domain.GroupRepository
	userRepo   domain.UserRepository
	transactor domain.Transactor
	logger     *zap.Logger
}

// NewInviteService 创建 InviteService 实例
func NewInviteService(
	inviteRepo domain.InviteRepository,
	groupRepo domain.GroupRepository,
	userRepo domain.UserRepository,
	transactor domain.Transactor,
	logger *zap.Logger,
) InviteService {
	return &inviteService{
		inviteRepo: inviteRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		transactor: transactor,
		logger:     logger,
	}
}

// Invite 批量邀请用户加入群组
func (s *inviteService) Invite(ctx context.Context, uid, groupID int64, candidates []string) (*dto.InviteResultDTO, error) {
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

	result := &dto.InviteResultDTO{
		Invited: make([]string, 0, len(candidates)),
		Skipped: make([]string, 0),
	}

	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		for _, email := range candidates {
			email = strings.TrimSpace(email)
			if email == "" {
				continue
			}

			user, err := s.userRepo.GetByEmail(ctx, email)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					result.Skipped = append(result.Skipped, email)
					continue
				}
				return err
			}

			// 邀请自己没有意义
			if user.UID == uid {
				result.Skipped = append(result.Skipped, email)
				continue
			}

			member, err := s.groupRepo.IsMember(ctx, groupID, user.UID)
			if err != nil {
				return err
			}
			if member {
				result.Skipped = append(result.Skipped, email)
				continue
			}

			// 同一 (用户, 群组) 组合只保留一条待处理邀请
			if _, err := s.inviteRepo.GetByUIDAndGroup(ctx, user.UID, groupID); err == nil {
				result.Skipped = append(result.Skipped, email)
				continue
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			if _, err := s.inviteRepo.Create(ctx, &domain.Invite{
				UID:     user.UID,
				GroupID: groupID,
			}); err != nil {
				return err
			}
			result.Invited = append(result.Invited, email)
		}
		return nil
	})
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	s.logger.Info("group invites created",
		zap.Int64("uid", uid),
		zap.Int64("groupId", groupID),
		zap.Int("invited", len(result.Invited)),
		zap.Int("skipped", len(result.Skipped)))

	return result, nil
}

// ListMine 获取当前用户的待处理邀请
func (s *inviteService) ListMine(ctx context.Context, uid int64) ([]*dto.InviteDTO, error) {
	if uid == 0 {
		return nil, code.ErrorNotAuthorized
	}

	invites, err := s.inviteRepo.ListByUID(ctx, uid)
	if err != nil {
		return nil, code.ErrorDBQuery
	}

	list := make([]*dto.InviteDTO, 0, len(invites))
	for _, invite := range invites {
		item := &dto.InviteDTO{
			ID:        invite.ID,
			UID:       invite.UID,
			GroupID:   invite.GroupID,
			CreatedAt: timex.Time(invite.CreatedAt),
		}
		if group, err := s.groupRepo.GetByID(ctx, invite.GroupID); err == nil {
			item.GroupName = group.Name
		}
		list = append(list, item)
	}
	return list, nil
}

// getOwnInvite 获取邀请并校验归属
func (s *inviteService) getOwnInvite(ctx context.Context, uid, inviteID int64) (*domain.Invite, error) {
	if uid == 0 {
		return nil, code.ErrorNotAuthorized
	}
	invite, err := s.inviteRepo.GetByID(ctx, inviteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorInviteNotFound
		}
		return nil, code.ErrorDBQuery
	}
	// 只有被邀请人可以处理邀请，他人视角邀请不存在
	if invite.UID != uid {
		return nil, code.ErrorInviteNotFound
	}
	return invite, nil
}

// Accept 接受邀请
func (s *inviteService) Accept(ctx context.Context, uid, inviteID int64) error {
	invite, err := s.getOwnInvite(ctx, uid, inviteID)
	if err != nil {
		return err
	}

	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.groupRepo.AddMember(ctx, invite.GroupID, uid); err != nil {
			return err
		}
		return s.inviteRepo.Delete(ctx, invite.ID)
	})
	if err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	s.logger.Info("invite accepted",
		zap.Int64("uid", uid),
		zap.Int64("groupId", invite.GroupID),
		zap.Int64("inviteId", invite.ID))

	return nil
}

// Reject 拒绝邀请
func (s *inviteService) Reject(ctx context.Context, uid, inviteID int64) error {
	invite, err := s.getOwnInvite(ctx, uid, inviteID)
	if err != nil {
		return err
	}

	if err := s.inviteRepo.Delete(ctx, invite.ID); err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return nil
}
