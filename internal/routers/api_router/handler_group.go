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

// GroupHandler 群组 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type GroupHandler struct {
	*Handler
}

// NewGroupHandler 创建 GroupHandler 实例
func NewGroupHandler(a *app.App) *GroupHandler {
	return &GroupHandler{
		Handler: NewHandler(a),
	}
}

// groupID 从路径参数解析群组 ID
func groupID(c *gin.Context) int64 {
	return convert.StrTo(c.Param("id")).MustInt64()
}

// Create 创建群组
// @Summary 创建群组
// @Description 创建群组，群组名全局唯一，创建者成为首个成员
// @Tags 群组
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Accept json
// @Produce json
// @Param params body dto.GroupCreateRequest true "群组名称"
// @Success 200 {object} pkgapp.Res{data=dto.GroupDTO} "成功"
// @Router /api/group [post]
func (h *GroupHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.GroupCreateRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("GroupHandler.Create.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("GroupHandler.Create err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	group, err := h.App.GroupService.Create(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "GroupHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(group))
}

// List 获取自己所在的群组列表
// @Summary 获取群组列表
// @Description 获取当前用户所属的全部群组
// @Tags 群组
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Success 200 {object} pkgapp.Res{data=[]dto.GroupDTO} "成功"
// @Router /api/group/list [get]
func (h *GroupHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("GroupHandler.List err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	list, err := h.App.GroupService.ListMine(ctx, uid)
	if err != nil {
		h.logError(ctx, "GroupHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(list))
}

// Members 获取群组成员列表
// @Summary 获取成员列表
// @Description 获取群组全部成员，仅群组成员可见
// @Tags 群组
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param id path int64 true "群组 ID"
// @Success 200 {object} pkgapp.Res{data=[]dto.MemberDTO} "成功"
// @Router /api/group/{id}/members [get]
func (h *GroupHandler) Members(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("GroupHandler.Members err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	list, err := h.App.GroupService.Members(ctx, uid, groupID(c))
	if err != nil {
		h.logError(ctx, "GroupHandler.Members", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(list))
}

// Leave 退出群组
// @Summary 退出群组
// @Description 退出群组，最后一名成员退出后群组级联删除
// @Tags 群组
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param id path int64 true "群组 ID"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/group/{id}/leave [post]
func (h *GroupHandler) Leave(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("GroupHandler.Leave err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	if err := h.App.GroupService.Leave(ctx, uid, groupID(c)); err != nil {
		h.logError(ctx, "GroupHandler.Leave", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}
