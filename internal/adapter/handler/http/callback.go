package http

import (
	"strings"
	"time"

	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/MikeRez0/pointsweep/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CallbackHandler receives events pushed by brokers and by the bank rail.
type CallbackHandler struct {
	Handler
	callbacks  port.BrokerCallbackHandler
	settlement port.PaymentSettlement
}

func NewCallbackHandler(callbacks port.BrokerCallbackHandler, settlement port.PaymentSettlement,
	logger *zap.Logger) (*CallbackHandler, error) {
	return &CallbackHandler{
		Handler:    *NewHandler(logger),
		callbacks:  callbacks,
		settlement: settlement,
	}, nil
}

func (ch *CallbackHandler) BrokerCallback(ctx *gin.Context) {
	var event domain.BrokerEvent
	if err := ctx.ShouldBindJSON(&event); err != nil {
		ch.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	if signer := strings.TrimSpace(ctx.GetHeader(HeaderBrokerID)); signer != "" {
		if event.BrokerID != "" && event.BrokerID != signer {
			ch.handleError(ctx, domain.ErrSignatureMismatch)
			return
		}
		event.BrokerID = signer
	}
	event.ReceivedAt = time.Now().UTC()

	result, err := ch.callbacks.Handle(ctx, &event)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}
	ch.handleSuccess(ctx, result)
}

func (ch *CallbackHandler) BankCallback(ctx *gin.Context) {
	var update domain.TransferUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		ch.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	transfer, err := ch.settlement.ApplyTransferUpdate(ctx, &update)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}
	ch.handleSuccess(ctx, transfer)
}
