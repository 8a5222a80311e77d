package http

import (
	"context"

	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/MikeRez0/pointsweep/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Handler
	service port.OrderService
}

func NewOrderHandler(service port.OrderService, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type OrderResp struct {
	*domain.Order
	History []domain.StatusChange `json:"history"`
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	order, history, err := oh.service.GetOrder(ctx, ctx.Param("id"))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	if history == nil {
		history = []domain.StatusChange{}
	}
	oh.handleSuccess(ctx, OrderResp{Order: order, History: history})
}

func (oh *OrderHandler) Cancel(ctx *gin.Context) {
	oh.transition(ctx, oh.service.Cancel)
}

func (oh *OrderHandler) RequestSell(ctx *gin.Context) {
	oh.transition(ctx, oh.service.RequestSell)
}

func (oh *OrderHandler) RevertSell(ctx *gin.Context) {
	oh.transition(ctx, oh.service.RevertSell)
}

func (oh *OrderHandler) transition(ctx *gin.Context, fn func(ctx context.Context, id string) (*domain.Order, error)) {
	id := ctx.Param("id")
	order, err := fn(ctx, id)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.logger.Info("order status changed by admin",
		zap.String("order_id", id),
		zap.String("status", string(order.Status)),
		zap.String("admin", getAuthPayload(ctx).Subject))
	oh.handleSuccess(ctx, order)
}
