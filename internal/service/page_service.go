package service

import (
	"context"
	"errors"
	"time"

	"github.com/campuslog/page-share-service/internal/domain"
	"github.com/campuslog/page-share-service/internal/dto"
	"github.com/campuslog/page-share-service/pkg/code"
	"github.com/campuslog/page-share-service/pkg/timex"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PageService 定义页面业务服务接口
// 页面只接受所有者写入，编辑前先落一份历史快照
type PageService interface {
	// Create 创建页面
	Create(ctx context.Context, uid int64, params *dto.PageCreateRequest) (*dto.PageDTO, error)

	// Update 编辑页面，仅所有者可用
	// 先对编辑前状态做快照，再应用新值
	Update(ctx context.Context, uid, pageID int64, params *dto.PageUpdateRequest) (*dto.PageDTO, error)

	// Delete 删除页面，仅所有者可用
	// 先清理全部分享关系和历史版本，再删除页面本身
	Delete(ctx context.Context, uid, pageID int64) error

	// Get 所有者读取页面，不计浏览数
	Get(ctx context.Context, uid, pageID int64) (*dto.PageDTO, error)

	// ListOwned 分页获取用户拥有的页面
	ListOwned(ctx context.Context, uid int64, page, pageSize int) ([]*dto.PageDTO, int64, error)
}

// pageService 实现 PageService 接口
type pageService struct {
	pageRepo    domain.PageRepository
	versionRepo domain.PageVersionRepository
	shareRepo   domain.ShareRepository
	transactor  domain.Transactor
	logger      *zap.Logger
}

// NewPageService 创建 PageService 实例
func NewPageService(
	pageRepo domain.PageRepository,
	versionRepo domain.PageVersionRepository,
	shareRepo domain.ShareRepository,
	transactor domain.Transactor,
	logger *zap.Logger,
) PageService {
	return &pageService{
		pageRepo:    pageRepo,
		versionRepo: versionRepo,
		shareRepo:   shareRepo,
		transactor:  transactor,
		logger:      logger,
	}
}

// pageToDTO 将领域模型转换为 DTO
func pageToDTO(page *domain.Page) *dto.PageDTO {
	if page == nil {
		return nil
	}
	return &dto.PageDTO{
		ID:        page.ID,
		UID:       page.UID,
		Title:     page.Title,
		Content:   page.Content,
		ViewCount: page.ViewCount,
		UpdatedAt: timex.Time(page.UpdatedAt),
		CreatedAt: timex.Time(page.CreatedAt),
	}
}

// validatePageContent 校验标题和内容长度
func validatePageContent(title, content string) error {
	if !domain.ValidateTitleLen(title) {
		return code.ErrorPageTitleTooLong
	}
	if !domain.ValidateContentLen(content) {
		return code.ErrorPageContentTooLong
	}
	return nil
}

// getOwnedPage 获取页面并校验所有权
func (s *pageService) getOwnedPage(ctx context.Context, uid, pageID int64) (*domain.Page, error) {
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

// Create 创建页面
func (s *pageService) Create(ctx context.Context, uid int64, params *dto.PageCreateRequest) (*dto.PageDTO, error) {
	if uid == 0 {
		return nil, code.ErrorNotAuthorized
	}
	if err := validatePageContent(params.Title, params.Content); err != nil {
		return nil, err
	}

	page, err := s.pageRepo.Create(ctx, &domain.Page{
		UID:     uid,
		Title:   params.Title,
		Content: params.Content,
	})
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	s.logger.Info("page created",
		zap.Int64("uid", uid),
		zap.Int64("pageId", page.ID))

	return pageToDTO(page), nil
}

// Update 编辑页面
// 快照与更新在同一事务内，二者要么都落库要么都回滚
func (s *pageService) Update(ctx context.Context, uid, pageID int64, params *dto.PageUpdateRequest) (*dto.PageDTO, error) {
	if err := validatePageContent(params.Title, params.Content); err != nil {
		return nil, err
	}

	page, err := s.getOwnedPage(ctx, uid, pageID)
	if err != nil {
		return nil, err
	}

	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		// 编辑前状态入历史
		if _, err := s.versionRepo.Create(ctx, &domain.PageVersion{
			PageID:  page.ID,
			Title:   page.Title,
			Content: page.Content,
			SavedAt: page.UpdatedAt,
		}); err != nil {
			return err
		}

		page.Title = params.Title
		page.Content = params.Content
		page.UpdatedAt = time.Now()
		return s.pageRepo.Update(ctx, page)
	})
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	return pageToDTO(page), nil
}

// Delete 删除页面
// 分享关系先于页面本身清理，避免留下悬挂引用
func (s *pageService) Delete(ctx context.Context, uid, pageID int64) error {
	page, err := s.getOwnedPage(ctx, uid, pageID)
	if err != nil {
		return err
	}

	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.shareRepo.DeleteByPageID(ctx, page.ID); err != nil {
			return err
		}
		if err := s.versionRepo.DeleteByPageID(ctx, page.ID); err != nil {
			return err
		}
		return s.pageRepo.Delete(ctx, page.ID)
	})
	if err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	s.logger.Info("page deleted",
		zap.Int64("uid", uid),
		zap.Int64("pageId", pageID))

	return nil
}

// Get 所有者读取页面
func (s *pageService) Get(ctx context.Context, uid, pageID int64) (*dto.PageDTO, error) {
	page, err := s.getOwnedPage(ctx, uid, pageID)
	if err != nil {
		return nil, err
	}
	return pageToDTO(page), nil
}

// ListOwned 分页获取用户拥有的页面
func (s *pageService) ListOwned(ctx context.Context, uid int64, page, pageSize int) ([]*dto.PageDTO, int64, error) {
	if uid == 0 {
		return nil, 0, code.ErrorNotAuthorized
	}
	pages, count, err := s.pageRepo.ListByUID(ctx, uid, page, pageSize)
	if err != nil {
		return nil, 0, code.ErrorDBQuery
	}
	list := make([]*dto.PageDTO, 0, len(pages))
	for _, p := range pages {
		list = append(list, pageToDTO(p))
	}
	return list, count, nil
}
