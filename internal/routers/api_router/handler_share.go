package api_router

import (
	"github.com/campuslog/page-share-service/internal/app"
	"github.com/campuslog/page-share-service/internal/dto"
	pkgapp "github.com/campuslog/page-share-service/pkg/app"
	"github.com/campuslog/page-share-service/pkg/code"
	apperrors "github.com/campuslog/page-share-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ShareHandler 页面分享 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type ShareHandler struct {
	*Handler
}

// NewShareHandler 创建 ShareHandler 实例
func NewShareHandler(a *app.App) *ShareHandler {
	return &ShareHandler{
		Handler: NewHandler(a),
	}
}

// ListRecipients 获取页面接收者列表
// @Summary 获取接收者列表
// @Description 获取页面的全部分享对象，仅所有者可见
// @Tags 分享
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param id path int64 true "页面 ID"
// @Success 200 {object} pkgapp.Res{data=[]dto.ShareTargetDTO} "成功"
// @Router /api/page/{id}/recipients [get]
func (h *ShareHandler) ListRecipients(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("ShareHandler.ListRecipients err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	list, err := h.App.ShareService.ListRecipients(ctx, uid, pageID(c))
	if err != nil {
		h.logError(ctx, "ShareHandler.ListRecipients", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(list))
}

// AddRecipients 批量添加接收者
// @Summary 添加接收者
// @Description 按邮箱或群组名批量添加分享对象，无法解析的标识跳过并上报
// @Tags 分享
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Accept json
// @Produce json
// @Param id path int64 true "页面 ID"
// @Param params body dto.AddRecipientsRequest true "接收者标识"
// @Success 200 {object} pkgapp.Res{data=dto.AddRecipientsResultDTO} "成功"
// @Router /api/page/{id}/recipients [post]
func (h *ShareHandler) AddRecipients(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.AddRecipientsRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ShareHandler.AddRecipients.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("ShareHandler.AddRecipients err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	result, err := h.App.ShareService.AddRecipients(ctx, uid, pageID(c), params.Targets)
	if err != nil {
		h.logError(ctx, "ShareHandler.AddRecipients", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// RemoveRecipient 移除接收者
// @Summary 移除接收者
// @Description 所有者移除任意分享对象，接收者也可移除自己
// @Tags 分享
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Accept json
// @Produce json
// @Param id path int64 true "页面 ID"
// @Param params body dto.RemoveRecipientRequest true "分享对象"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/page/{id}/recipient [delete]
func (h *ShareHandler) RemoveRecipient(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.RemoveRecipientRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ShareHandler.RemoveRecipient.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("ShareHandler.RemoveRecipient err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	if err := h.App.ShareService.RemoveRecipient(ctx, uid, pageID(c), params.Kind, params.ID); err != nil {
		h.logError(ctx, "ShareHandler.RemoveRecipient", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}
