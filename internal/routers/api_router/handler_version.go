package api_router

import (
	"github.com/campuslog/page-share-service/internal/app"
	pkgapp "github.com/campuslog/page-share-service/pkg/app"
	"github.com/campuslog/page-share-service/pkg/code"
	"github.com/campuslog/page-share-service/pkg/convert"
	apperrors "github.com/campuslog/page-share-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// PageVersionHandler 页面历史版本 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type PageVersionHandler struct {
	*Handler
}

// NewPageVersionHandler 创建 PageVersionHandler 实例
func NewPageVersionHandler(a *app.App) *PageVersionHandler {
	return &PageVersionHandler{
		Handler: NewHandler(a),
	}
}

// versionID 从路径参数解析版本 ID
func versionID(c *gin.Context) int64 {
	return convert.StrTo(c.Param("vid")).MustInt64()
}

// List 获取页面历史版本列表
// @Summary 获取历史版本列表
// @Description 分页获取页面的历史版本，附带相对当前内容的差异
// @Tags 历史版本
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param id path int64 true "页面 ID"
// @Success 200 {object} pkgapp.Res{data=[]dto.PageVersionDTO} "成功"
// @Router /api/page/{id}/versions [get]
func (h *PageVersionHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("PageVersionHandler.List err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	list, count, err := h.App.VersionService.List(ctx, uid, pageID(c), pkgapp.GetPage(c), pkgapp.GetPageSize(c))
	if err != nil {
		h.logError(ctx, "PageVersionHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, list, int(count))
}

// Restore 恢复页面到指定历史版本
// @Summary 恢复历史版本
// @Description 将页面恢复到指定历史版本，当前状态转入历史
// @Tags 历史版本
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param id path int64 true "页面 ID"
// @Param vid path int64 true "版本 ID"
// @Success 200 {object} pkgapp.Res{data=dto.PageDTO} "成功"
// @Router /api/page/{id}/version/{vid}/restore [post]
func (h *PageVersionHandler) Restore(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("PageVersionHandler.Restore err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	page, err := h.App.VersionService.Restore(ctx, uid, pageID(c), versionID(c))
	if err != nil {
		h.logError(ctx, "PageVersionHandler.Restore", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(page))
}

// Discard 丢弃指定历史版本
// @Summary 丢弃历史版本
// @Description 删除指定历史版本，版本不存在时静默成功
// @Tags 历史版本
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param id path int64 true "页面 ID"
// @Param vid path int64 true "版本 ID"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/page/{id}/version/{vid} [delete]
func (h *PageVersionHandler) Discard(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("PageVersionHandler.Discard err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	if err := h.App.VersionService.Discard(ctx, uid, pageID(c), versionID(c)); err != nil {
		h.logError(ctx, "PageVersionHandler.Discard", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}
