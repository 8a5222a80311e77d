package http

import (
	"strconv"
	"strings"

	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/MikeRez0/pointsweep/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BatchHandler struct {
	Handler
	service port.BatchPreparer
}

func NewBatchHandler(service port.BatchPreparer, logger *zap.Logger) (*BatchHandler, error) {
	return &BatchHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type prepareRequest struct {
	MemberID   string `json:"member_id"`
	MerchantID string `json:"merchant_id"`
}

func (bh *BatchHandler) PreviewCounts(ctx *gin.Context) {
	counts, err := bh.service.PreviewCounts(ctx, ctx.Query("merchant_id"))
	if err != nil {
		bh.handleError(ctx, err)
		return
	}
	bh.handleSuccess(ctx, counts)
}

func (bh *BatchHandler) Prepare(ctx *gin.Context) {
	var req prepareRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			bh.handleValidationError(ctx, domain.ErrBadRequest)
			return
		}
	}

	batch, err := bh.service.Prepare(ctx, strings.TrimSpace(req.MemberID), strings.TrimSpace(req.MerchantID))
	if err != nil {
		bh.handleError(ctx, err)
		return
	}
	bh.handleSuccess(ctx, batch)
}

func (bh *BatchHandler) Batches(ctx *gin.Context) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			bh.handleValidationError(ctx, domain.ErrInvalidLimit)
			return
		}
		limit = n
	}

	list, err := bh.service.Batches(ctx, limit)
	if err != nil {
		bh.handleError(ctx, err)
		return
	}
	bh.handleSuccess(ctx, list)
}

func (bh *BatchHandler) Approve(ctx *gin.Context) {
	batch, err := bh.service.Approve(ctx, ctx.Param("id"))
	if err != nil {
		bh.handleError(ctx, err)
		return
	}
	bh.handleSuccess(ctx, batch)
}

func (bh *BatchHandler) Discard(ctx *gin.Context) {
	batch, err := bh.service.Discard(ctx, ctx.Param("id"))
	if err != nil {
		bh.handleError(ctx, err)
		return
	}
	bh.handleSuccess(ctx, batch)
}

func (bh *BatchHandler) Stats(ctx *gin.Context) {
	stats, err := bh.service.Stats(ctx, ctx.Param("id"))
	if err != nil {
		bh.handleError(ctx, err)
		return
	}
	bh.handleSuccess(ctx, stats)
}

func (bh *BatchHandler) Drilldown(ctx *gin.Context) {
	page, err := positiveQuery(ctx, "page")
	if err != nil {
		bh.handleValidationError(ctx, domain.ErrInvalidPage)
		return
	}
	perPage, err := positiveQuery(ctx, "per_page")
	if err != nil {
		bh.handleValidationError(ctx, domain.ErrInvalidLimit)
		return
	}

	result, err := bh.service.Drilldown(ctx, domain.PreparedOrderFilter{
		BatchID:  ctx.Param("id"),
		BasketID: ctx.Query("basket_id"),
		MemberID: ctx.Query("member_id"),
		Symbol:   ctx.Query("symbol"),
		BrokerID: ctx.Query("broker_id"),
		Page:     page,
		PerPage:  perPage,
	})
	if err != nil {
		bh.handleError(ctx, err)
		return
	}
	bh.handleSuccess(ctx, result)
}

// positiveQuery reads an optional positive integer; absent means zero.
func positiveQuery(ctx *gin.Context, key string) (uint64, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, domain.ErrBadRequest
	}
	return n, nil
}
