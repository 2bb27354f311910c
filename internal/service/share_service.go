package service

import (
	"context"
	"errors"
	"strings"

	"github.com/campuslog/page-share-service/internal/domain"
	"github.com/campuslog/page-share-service/internal/dto"
	"github.com/campuslog/page-share-service/pkg/code"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ShareService 定义页面分享业务服务接口
type ShareService interface {
	// Show 访客入口，按分享授权读取页面
	// 所有者直接读取不计数，访客命中授权后浏览计数加一再返回
	// 匿名访问或未授权一律返回页面不存在，不泄露页面是否存在
	Show(ctx context.Context, uid, pageID int64) (*dto.PageDTO, error)

	// AddRecipients 批量添加分享接收者，仅所有者可操作
	// 每个标识先按邮箱解析为用户，否则按群组名解析，无法解析的跳过并上报
	// 重复添加同一接收者为无操作
	AddRecipients(ctx context.Context, uid, pageID int64, targets []string) (*dto.AddRecipientsResultDTO, error)

	// RemoveRecipient 移除分享接收者
	// 所有者可移除任意接收者，用户也可以把自己从接收列表中移除
	RemoveRecipient(ctx context.Context, uid, pageID int64, kind string, targetID int64) error

	// ListRecipients 获取页面的接收者列表，仅所有者可见
	ListRecipients(ctx context.Context, uid, pageID int64) ([]*dto.ShareTargetDTO, error)

	// ListSharedWithMe 获取分享给当前用户的页面
	// 包含直接分享和经由群组成员身份获得的分享
	ListSharedWithMe(ctx context.Context, uid int64, page, pageSize int) ([]*dto.PageDTO, int64, error)
}

// shareService 实现 ShareService 接口
type shareService struct {
	pageRepo   domain.PageRepository
	shareRepo  domain.ShareRepository
	userRepo   domain.UserRepository
	groupRepo  domain.GroupRepository
	transactor domain.Transactor
	logger     *zap.Logger
}

// NewShareService 创建 ShareService 实例
func NewShareService(
	pageRepo domain.PageRepository,
	shareRepo domain.ShareRepository,
	userRepo domain.UserRepository,
	groupRepo domain.GroupRepository,
	transactor domain.Transactor,
	logger *zap.Logger,
) ShareService {
	return &shareService{
		pageRepo:   pageRepo,
		shareRepo:  shareRepo,
		userRepo:   userRepo,
		groupRepo:  groupRepo,
		transactor: transactor,
		logger:     logger,
	}
}

// Show 访客入口，按分享授权读取页面
func (s *shareService) Show(ctx context.Context, uid, pageID int64) (*dto.PageDTO, error) {
	page, err := s.pageRepo.GetByID(ctx, pageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorPageNotFound
		}
		return nil, code.ErrorDBQuery
	}

	// 匿名访问与未授权同样处理，不泄露页面存在性
	if uid == 0 {
		return nil, code.ErrorPageNotFound
	}

	// 所有者读取自己的页面不经过计数
	if page.IsOwnedBy(uid) {
		return pageToDTO(page), nil
	}

	granted, err := s.resolveGrant(ctx, uid, pageID)
	if err != nil {
		return nil, code.ErrorDBQuery
	}
	if !granted {
		return nil, code.ErrorPageNotFound
	}

	// 计数先落库再返回，返回的快照携带加一后的值
	if err := s.pageRepo.IncrementViewCount(ctx, page.ID); err != nil {
		return nil, code.ErrorDBQuery
	}
	page.ViewCount++

	return pageToDTO(page), nil
}

// resolveGrant 每次请求即时计算访问授权
// 直接分享或任一所在群组被授权即放行，群组成员关系变化立刻生效
func (s *shareService) resolveGrant(ctx context.Context, uid, pageID int64) (bool, error) {
	ok, err := s.shareRepo.Exists(ctx, pageID, domain.UserTarget(uid))
	if err != nil {
		return false, err
	}
	if ok {
		return true, nil
	}

	groupIDs, err := s.shareRepo.ListGroupIDs(ctx, pageID)
	if err != nil {
		return false, err
	}
	if len(groupIDs) == 0 {
		return false, nil
	}
	return s.groupRepo.IsMemberOfAny(ctx, uid, groupIDs)
}

// resolveTarget 将接收者标识解析为分享目标
// 先按邮箱解析用户，未命中再按群组名解析
// 只有查无记录才视为无法解析，存储错误原样上抛
func (s *shareService) resolveTarget(ctx context.Context, identifier string) (domain.ShareTarget, string, bool, error) {
	user, err := s.userRepo.GetByEmail(ctx, identifier)
	if err == nil {
		return domain.UserTarget(user.UID), user.Username, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ShareTarget{}, "", false, err
	}

	group, err := s.groupRepo.GetByName(ctx, identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ShareTarget{}, "", false, nil
		}
		return domain.ShareTarget{}, "", false, err
	}
	return domain.GroupTarget(group.ID), group.Name, true, nil
}

// AddRecipients 批量添加分享接收者
func (s *shareService) AddRecipients(ctx context.Context, uid, pageID int64, targets []string) (*dto.AddRecipientsResultDTO, error) {
	if uid == 0 {
		return nil, code.ErrorNotAuthorized
	}
	page, err := s.pageRepo.GetByID(ctx, pageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorPageNotFound
		}
		return nil, code.ErrorDBQuery
	}
	if !page.IsOwnedBy(uid) {
		return nil, code.ErrorNotPageOwner
	}

	result := &dto.AddRecipientsResultDTO{
		Added:   make([]dto.ShareTargetDTO, 0, len(targets)),
		Skipped: make([]string, 0),
	}

	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		for _, identifier := range targets {
			identifier = strings.TrimSpace(identifier)
			if identifier == "" {
				continue
			}
			target, name, ok, err := s.resolveTarget(ctx, identifier)
			if err != nil {
				return err
			}
			if !ok {
				result.Skipped = append(result.Skipped, identifier)
				continue
			}
			if err := s.shareRepo.Add(ctx, pageID, target); err != nil {
				return err
			}
			result.Added = append(result.Added, dto.ShareTargetDTO{
				Kind: string(target.Kind),
				ID:   target.ID,
				Name: name,
			})
		}
		return nil
	})
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	s.logger.Info("page recipients added",
		zap.Int64("uid", uid),
		zap.Int64("pageId", pageID),
		zap.Int("added", len(result.Added)),
		zap.Int("skipped", len(result.Skipped)))

	return result, nil
}

// RemoveRecipient 移除分享接收者
func (s *shareService) RemoveRecipient(ctx context.Context, uid, pageID int64, kind string, targetID int64) error {
	if uid == 0 {
		return code.ErrorNotAuthorized
	}
	target := domain.ShareTarget{Kind: domain.TargetKind(kind), ID: targetID}
	if !target.Kind.IsValid() {
		return code.ErrorInvalidParams
	}

	page, err := s.pageRepo.GetByID(ctx, pageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorPageNotFound
		}
		return code.ErrorDBQuery
	}

	// 用户可以把自己从接收列表中移除，其余操作仅所有者可执行
	selfRemoval := target.Kind == domain.TargetKindUser && target.ID == uid
	if !page.IsOwnedBy(uid) && !selfRemoval {
		return code.ErrorNotAuthorized
	}

	if err := s.shareRepo.Remove(ctx, pageID, target); err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return nil
}

// ListRecipients 获取页面的接收者列表
func (s *shareService) ListRecipients(ctx context.Context, uid, pageID int64) ([]*dto.ShareTargetDTO, error) {
	if uid == 0 {
		return nil, code.ErrorNotAuthorized
	}
	page, err := s.pageRepo.GetByID(ctx, pageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorPageNotFound
		}
		return nil, code.ErrorDBQuery
	}
	if !page.IsOwnedBy(uid) {
		return nil, code.ErrorNotPageOwner
	}

	targets, err := s.shareRepo.ListTargets(ctx, pageID)
	if err != nil {
		return nil, code.ErrorDBQuery
	}

	// 批量回填用户名，群组逐个取名
	userIDs := make([]int64, 0, len(targets))
	for _, t := range targets {
		if t.Kind == domain.TargetKindUser {
			userIDs = append(userIDs, t.ID)
		}
	}
	names := make(map[int64]string, len(userIDs))
	if len(userIDs) > 0 {
		users, err := s.userRepo.ListByUIDs(ctx, userIDs)
		if err != nil {
			return nil, code.ErrorDBQuery
		}
		for _, u := range users {
			names[u.UID] = u.Username
		}
	}

	list := make([]*dto.ShareTargetDTO, 0, len(targets))
	for _, t := range targets {
		item := &dto.ShareTargetDTO{Kind: string(t.Kind), ID: t.ID}
		switch t.Kind {
		case domain.TargetKindUser:
			item.Name = names[t.ID]
		case domain.TargetKindGroup:
			if group, err := s.groupRepo.GetByID(ctx, t.ID); err == nil {
				item.Name = group.Name
			}
		}
		list = append(list, item)
	}
	return list, nil
}

// ListSharedWithMe 获取分享给当前用户的页面
func (s *shareService) ListSharedWithMe(ctx context.Context, uid int64, page, pageSize int) ([]*dto.PageDTO, int64, error) {
	if uid == 0 {
		return nil, 0, code.ErrorNotAuthorized
	}

	targets := []domain.ShareTarget{domain.UserTarget(uid)}
	groups, err := s.groupRepo.ListByUID(ctx, uid)
	if err != nil {
		return nil, 0, code.ErrorDBQuery
	}
	for _, g := range groups {
		targets = append(targets, domain.GroupTarget(g.ID))
	}

	pageIDs, err := s.shareRepo.ListPageIDs(ctx, targets)
	if err != nil {
		return nil, 0, code.ErrorDBQuery
	}
	if len(pageIDs) == 0 {
		return []*dto.PageDTO{}, 0, nil
	}

	pages, count, err := s.pageRepo.ListByIDs(ctx, pageIDs, page, pageSize)
	if err != nil {
		return nil, 0, code.ErrorDBQuery
	}

	list := make([]*dto.PageDTO, 0, len(pages))
	for _, p := range pages {
		list = append(list, pageToDTO(p))
	}
	return list, count, nil
}
