package http

import (
	"strings"

	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/MikeRez0/pointsweep/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SweepHandler struct {
	Handler
	service port.SweepOrchestrator
}

func NewSweepHandler(service port.SweepOrchestrator, logger *zap.Logger) (*SweepHandler, error) {
	return &SweepHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type sweepRunRequest struct {
	MerchantID string `json:"merchant_id"`
}

type sweepRetryRequest struct {
	BatchID string `json:"batch_id"`
}

func (sh *SweepHandler) Run(ctx *gin.Context) {
	var req sweepRunRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			sh.handleValidationError(ctx, domain.ErrBadRequest)
			return
		}
	}

	result, err := sh.service.Run(ctx, strings.TrimSpace(req.MerchantID))
	sh.respond(ctx, result, err)
}

func (sh *SweepHandler) Preview(ctx *gin.Context) {
	preview, err := sh.service.Preview(ctx, ctx.Query("merchant_id"))
	if err != nil {
		sh.handleError(ctx, err)
		return
	}
	sh.handleSuccess(ctx, preview)
}

func (sh *SweepHandler) RetryFailed(ctx *gin.Context) {
	var req sweepRetryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	result, err := sh.service.RetryFailed(ctx, strings.TrimSpace(req.BatchID))
	sh.respond(ctx, result, err)
}

// respond reports a closed market as an unsuccessful 200 carrying the next open time.
func (sh *SweepHandler) respond(ctx *gin.Context, result *domain.SweepResult, err error) {
	if err != nil {
		if result == nil {
			sh.handleError(ctx, err)
			return
		}
		sh.handleErrorWithData(ctx, err, result)
		return
	}
	switch result.Status {
	case domain.SweepStatusMarketClosed:
		sh.handleOutcome(ctx, result, false, "market closed")
	case domain.SweepStatusFailed:
		sh.handleOutcome(ctx, result, false, "sweep failed")
	default:
		sh.handleSuccess(ctx, result)
	}
}
