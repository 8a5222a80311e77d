package http

import (
	"github.com/MikeRez0/pointsweep/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	Handler
	service port.Notifier
}

func NewNotificationHandler(service port.Notifier, logger *zap.Logger) (*NotificationHandler, error) {
	return &NotificationHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

func (nh *NotificationHandler) Retry(ctx *gin.Context) {
	result, err := nh.service.Retry(ctx, ctx.Param("id"))
	if err != nil {
		if result == nil {
			nh.handleError(ctx, err)
			return
		}
		nh.handleErrorWithData(ctx, err, result)
		return
	}
	nh.handleSuccess(ctx, result)
}
