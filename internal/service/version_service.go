package service

import (
	"context"
	"errors"
	"time"

	"github.com/campuslog/page-share-service/internal/domain"
	"github.com/campuslog/page-share-service/internal/dto"
	"github.com/campuslog/page-share-service/pkg/code"
	"github.com/campuslog/page-share-service/pkg/timex"
	"github.com/sergi/go-diff/diffmatchpatch"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VersionService 定义页面历史版本业务服务接口
// 历史版本只对页面所有者可见
type VersionService interface {
	// List 分页获取页面的历史版本
	// 每条记录携带相对当前页面内容的差异文本
	List(ctx context.Context, uid, pageID int64, page, pageSize int) ([]*dto.PageVersionDTO, int64, error)

	// Restore 恢复页面到指定历史版本
	// 先快照当前状态，再覆盖页面，最后删除被消费的版本
	// 恢复前后历史版本数量不变，恢复操作本身总是可以再恢复
	Restore(ctx context.Context, uid, pageID, versionID int64) (*dto.PageDTO, error)

	// Discard 丢弃指定历史版本
	// 版本不存在或不属于该页面时为无操作
	Discard(ctx context.Context, uid, pageID, versionID int64) error
}

// versionService 实现 VersionService 接口
type versionService struct {
	versionRepo domain.PageVersionRepository
	pageRepo    domain.PageRepository
	transactor  domain.Transactor
	logger      *zap.Logger
}

// NewVersionService 创建 VersionService 实例
func NewVersionService(
	versionRepo domain.PageVersionRepository,
	pageRepo domain.PageRepository,
	transactor domain.Transactor,
	logger *zap.Logger,
) VersionService {
	return &versionService{
		versionRepo: versionRepo,
		pageRepo:    pageRepo,
		transactor:  transactor,
		logger:      logger,
	}
}

// getOwnedPage 获取页面并校验所有权
func (s *versionService) getOwnedPage(ctx context.Context, uid, pageID int64) (*domain.Page, error) {
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
	return page, nil
}

// versionToDTO 将领域模型转换为 DTO 并生成差异文本
func (s *versionService) versionToDTO(version *domain.PageVersion, currentContent string) *dto.PageVersionDTO {
	if version == nil {
		return nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(version.Content, currentContent, false)
	dmp.DiffCleanupSemantic(diffs)

	return &dto.PageVersionDTO{
		ID:      version.ID,
		PageID:  version.PageID,
		Title:   version.Title,
		Content: version.Content,
		Diff:    dmp.DiffPrettyText(diffs),
		SavedAt: timex.Time(version.SavedAt),
	}
}

// List 分页获取页面的历史版本
func (s *versionService) List(ctx context.Context, uid, pageID int64, page, pageSize int) ([]*dto.PageVersionDTO, int64, error) {
	p, err := s.getOwnedPage(ctx, uid, pageID)
	if err != nil {
		return nil, 0, err
	}

	versions, count, err := s.versionRepo.ListByPageID(ctx, pageID, page, pageSize)
	if err != nil {
		return nil, 0, code.ErrorDBQuery
	}

	list := make([]*dto.PageVersionDTO, 0, len(versions))
	for _, v := range versions {
		list = append(list, s.versionToDTO(v, p.Content))
	}
	return list, count, nil
}

// Restore 恢复页面到指定历史版本
func (s *versionService) Restore(ctx context.Context, uid, pageID, versionID int64) (*dto.PageDTO, error) {
	page, err := s.getOwnedPage(ctx, uid, pageID)
	if err != nil {
		return nil, err
	}

	version, err := s.versionRepo.GetByID(ctx, versionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorPageVersionNotFound
		}
		return nil, code.ErrorDBQuery
	}
	if version.PageID != page.ID {
		return nil, code.ErrorPageVersionMismatch
	}

	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		// 恢复前的当前状态先入历史，恢复永远不会丢数据
		if _, err := s.versionRepo.Create(ctx, &domain.PageVersion{
			PageID:  page.ID,
			Title:   page.Title,
			Content: page.Content,
			SavedAt: page.UpdatedAt,
		}); err != nil {
			return err
		}

		page.Title = version.Title
		page.Content = version.Content
		page.UpdatedAt = time.Now()
		if err := s.pageRepo.Update(ctx, page); err != nil {
			return err
		}

		// 被消费的版本出历史，版本数量净不变
		return s.versionRepo.Delete(ctx, version.ID)
	})
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	s.logger.Info("page restored from version",
		zap.Int64("uid", uid),
		zap.Int64("pageId", pageID),
		zap.Int64("versionId", versionID))

	return pageToDTO(page), nil
}

// Discard 丢弃指定历史版本
func (s *versionService) Discard(ctx context.Context, uid, pageID, versionID int64) error {
	page, err := s.getOwnedPage(ctx, uid, pageID)
	if err != nil {
		return err
	}

	version, err := s.versionRepo.GetByID(ctx, versionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 不存在即无操作
			return nil
		}
		return code.ErrorDBQuery
	}
	if version.PageID != page.ID {
		return nil
	}

	if err := s.versionRepo.Delete(ctx, version.ID); err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return nil
}
