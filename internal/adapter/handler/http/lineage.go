package http

import (
	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/MikeRez0/pointsweep/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LineageHandler struct {
	Handler
	service port.LineageTracer
}

func NewLineageHandler(service port.LineageTracer, logger *zap.Logger) (*LineageHandler, error) {
	return &LineageHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

// Trace answers GET /lineage?id=...&type=...; type defaults to order.
func (lh *LineageHandler) Trace(ctx *gin.Context) {
	kind := domain.LineageKind(ctx.DefaultQuery("type", string(domain.LineageOrder)))

	lineage, err := lh.service.Trace(ctx, ctx.Query("id"), kind)
	if err != nil {
		lh.handleError(ctx, err)
		return
	}
	lh.handleSuccess(ctx, lineage)
}
