package api_router

import (
	"github.com/campuslog/page-share-service/internal/app"
	"github.com/campuslog/page-share-service/internal/dto"
	pkgapp "github.com/campuslog/page-share-service/pkg/app"
	"github.com/campuslog/page-share-service/pkg/code"
	"github.com/campuslog/page-share-service/pkg/convert"
	apperrors "github.com/campuslog/page-share-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PageHandler 页面 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type PageHandler struct {
	*Handler
}

// NewPageHandler 创建 PageHandler 实例
func NewPageHandler(a *app.App) *PageHandler {
	return &PageHandler{
		Handler: NewHandler(a),
	}
}

// pageID 从路径参数解析页面 ID
func pageID(c *gin.Context) int64 {
	return convert.StrTo(c.Param("id")).MustInt64()
}

// Create 创建页面
// @Summary 创建页面
// @Description 创建新页面，创建者成为页面所有者
// @Tags 页面
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Accept json
// @Produce json
// @Param params body dto.PageCreateRequest true "页面内容"
// @Success 200 {object} pkgapp.Res{data=dto.PageDTO} "成功"
// @Router /api/page [post]
func (h *PageHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.PageCreateRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("PageHandler.Create.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("PageHandler.Create err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	page, err := h.App.PageService.Create(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "PageHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(page))
}

// Get 获取页面详情
// @Summary 获取页面详情
// @Description 所有者查看自己的页面，不计入浏览次数
// @Tags 页面
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param id path int64 true "页面 ID"
// @Success 200 {object} pkgapp.Res{data=dto.PageDTO} "成功"
// @Router /api/page/{id} [get]
func (h *PageHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("PageHandler.Get err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	page, err := h.App.PageService.Get(ctx, uid, pageID(c))
	if err != nil {
		h.logError(ctx, "PageHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(page))
}

// Show 按分享授权访问页面
// @Summary 访客查看分享页面
// @Description 经由直接分享或群组分享授权访问页面，访客读取计入浏览次数
// @Tags 页面
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param id path int64 true "页面 ID"
// @Success 200 {object} pkgapp.Res{data=dto.PageDTO} "成功"
// @Router /api/page/{id}/show [get]
func (h *PageHandler) Show(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		// 匿名请求与未授权同样返回页面不存在
		response.ToResponse(code.ErrorPageNotFound)
		return
	}

	ctx := c.Request.Context()

	page, err := h.App.ShareService.Show(ctx, uid, pageID(c))
	if err != nil {
		h.logError(ctx, "PageHandler.Show", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(page))
}

// Update 编辑页面
// @Summary 编辑页面
// @Description 编辑页面标题和内容，编辑前状态自动存入历史版本
// @Tags 页面
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Accept json
// @Produce json
// @Param id path int64 true "页面 ID"
// @Param params body dto.PageUpdateRequest true "页面内容"
// @Success 200 {object} pkgapp.Res{data=dto.PageDTO} "成功"
// @Router /api/page/{id} [put]
func (h *PageHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.PageUpdateRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("PageHandler.Update.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("PageHandler.Update err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	page, err := h.App.PageService.Update(ctx, uid, pageID(c), params)
	if err != nil {
		h.logError(ctx, "PageHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(page))
}

// Delete 删除页面
// @Summary 删除页面
// @Description 删除页面及其历史版本和分享授权
// @Tags 页面
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param id path int64 true "页面 ID"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/page/{id} [delete]
func (h *PageHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("PageHandler.Delete err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	if err := h.App.PageService.Delete(ctx, uid, pageID(c)); err != nil {
		h.logError(ctx, "PageHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// List 获取自己的页面列表
// @Summary 获取页面列表
// @Description 分页获取当前用户拥有的页面
// @Tags 页面
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Success 200 {object} pkgapp.Res{data=[]dto.PageDTO} "成功"
// @Router /api/page/list [get]
func (h *PageHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("PageHandler.List err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	list, count, err := h.App.PageService.ListOwned(ctx, uid, pkgapp.GetPage(c), pkgapp.GetPageSize(c))
	if err != nil {
		h.logError(ctx, "PageHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, list, int(count))
}

// SharedWithMe 获取分享给自己的页面列表
// @Summary 获取分享给我的页面
// @Description 分页获取直接分享或经由群组分享给当前用户的页面
// @Tags 页面
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Success 200 {object} pkgapp.Res{data=[]dto.PageDTO} "成功"
// @Router /api/page/shared [get]
func (h *PageHandler) SharedWithMe(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("PageHandler.SharedWithMe err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	list, count, err := h.App.ShareService.ListSharedWithMe(ctx, uid, pkgapp.GetPage(c), pkgapp.GetPageSize(c))
	if err != nil {
		h.logError(ctx, "PageHandler.SharedWithMe", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, list, int(count))
}
