package http

import (
	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/MikeRez0/pointsweep/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	Handler
	service port.PaymentSettlement
}

func NewPaymentHandler(service port.PaymentSettlement, logger *zap.Logger) (*PaymentHandler, error) {
	return &PaymentHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type markPaidRequest struct {
	MerchantID  string `json:"merchant_id"`
	PaidBatchID string `json:"paid_batch_id"`
}

func (ph *PaymentHandler) MarkPaid(ctx *gin.Context) {
	var req markPaidRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ph.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	result, err := ph.service.MarkPaid(ctx, req.MerchantID, req.PaidBatchID)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}
	ph.handleSuccess(ctx, result)
}
