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

// InviteHandler 群组邀请 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type InviteHandler struct {
	*Handler
}

// NewInviteHandler 创建 InviteHandler 实例
func NewInviteHandler(a *app.App) *InviteHandler {
	return &InviteHandler{
		Handler: NewHandler(a),
	}
}

// inviteID 从路径参数解析邀请 ID
func inviteID(c *gin.Context) int64 {
	return convert.StrTo(c.Param("id")).MustInt64()
}

// Invite 批量邀请用户加入群组
// @Summary 发起邀请
// @Description 按邮箱批量邀请用户加入群组，仅群组成员可发起
// @Tags 邀请
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Accept json
// @Produce json
// @Param id path int64 true "群组 ID"
// @Param params body dto.InviteCandidatesRequest true "候选人邮箱"
// @Success 200 {object} pkgapp.Res{data=dto.InviteResultDTO} "成功"
// @Router /api/group/{id}/invite [post]
func (h *InviteHandler) Invite(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.InviteCandidatesRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("InviteHandler.Invite.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("InviteHandler.Invite err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	result, err := h.App.InviteService.Invite(ctx, uid, groupID(c), params.Candidates)
	if err != nil {
		h.logError(ctx, "InviteHandler.Invite", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// List 获取自己的待处理邀请
// @Summary 获取邀请列表
// @Description 获取当前用户的全部待处理邀请
// @Tags 邀请
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Success 200 {object} pkgapp.Res{data=[]dto.InviteDTO} "成功"
// @Router /api/invite/list [get]
func (h *InviteHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("InviteHandler.List err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	list, err := h.App.InviteService.ListMine(ctx, uid)
	if err != nil {
		h.logError(ctx, "InviteHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(list))
}

// Accept 接受邀请
// @Summary 接受邀请
// @Description 接受邀请并加入群组，邀请随即消费
// @Tags 邀请
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param id path int64 true "邀请 ID"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/invite/{id}/accept [post]
func (h *InviteHandler) Accept(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("InviteHandler.Accept err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	if err := h.App.InviteService.Accept(ctx, uid, inviteID(c)); err != nil {
		h.logError(ctx, "InviteHandler.Accept", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// Reject 拒绝邀请
// @Summary 拒绝邀请
// @Description 拒绝邀请，之后仍可再次被邀请
// @Tags 邀请
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param id path int64 true "邀请 ID"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/invite/{id}/reject [post]
func (h *InviteHandler) Reject(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("InviteHandler.Reject err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	if err := h.App.InviteService.Reject(ctx, uid, inviteID(c)); err != nil {
		h.logError(ctx, "InviteHandler.Reject", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}
