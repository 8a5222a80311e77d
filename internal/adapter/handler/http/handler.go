package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// handleValidationError sends an error response for some specific request validation error
func (h *Handler) handleValidationError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, response{Error: err.Error()})
}

// handleAbort sends an error response and aborts the request with the status mapped from err
func (h *Handler) handleAbort(ctx *gin.Context, err error) {
	status, ok := statusOf(err)
	if !ok || status == http.StatusInternalServerError {
		h.logger.Error("aborting request", zap.Error(err))
	}
	ctx.AbortWithStatusJSON(status, response{Error: errorMessage(err, status)})
}

func (h *Handler) handleError(ctx *gin.Context, err error) {
	h.handleErrorWithData(ctx, err, nil)
}

// handleErrorWithData answers with the error status but still returns the partial result.
func (h *Handler) handleErrorWithData(ctx *gin.Context, err error, data any) {
	status, ok := statusOf(err)
	if !ok || status == http.StatusInternalServerError {
		h.logger.Error("error processing request",
			zap.String("path", ctx.FullPath()), zap.Error(err))
	}
	ctx.JSON(status, response{Data: data, Error: errorMessage(err, status)})
}

// handleSuccessWithStatus sends a success response with the specified status code and optional data
func (h *Handler) handleSuccessWithStatus(ctx *gin.Context, data any, status int) {
	ctx.JSON(status, response{Success: true, Data: data})
}

func (h *Handler) handleSuccess(ctx *gin.Context, data any) {
	h.handleSuccessWithStatus(ctx, data, http.StatusOK)
}

// handleOutcome answers 200 with the result, flagging success only when ok.
func (h *Handler) handleOutcome(ctx *gin.Context, data any, ok bool, reason string) {
	ctx.JSON(http.StatusOK, response{Success: ok, Data: data, Error: reason})
}
