// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"context"

	"github.com/campuslog/page-share-service/internal/app"
	"github.com/campuslog/page-share-service/internal/middleware"
	"github.com/campuslog/page-share-service/pkg/logger"

	"go.uber.org/zap"
)

// Handler 基础 Handler 结构体，封装 App Container
// 所有 API Handler 都应该嵌入此结构体以获得依赖注入能力
type Handler struct {
	App *app.App
}

// NewHandler 创建基础 Handler 实例
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

// logError 记录错误日志，包含 Trace ID
func (h *Handler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String(logger.FieldTraceID, traceID),
	)
}
