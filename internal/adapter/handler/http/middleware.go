package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MikeRez0/pointsweep/internal/adapter/webhook"
	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/MikeRez0/pointsweep/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const authHeaderKey = "Authorization"
const authType = "Bearer"
const adminPayloadKey = "admin_payload"

// HeaderBrokerID names the broker that signed an inbound callback.
const HeaderBrokerID = "X-Broker-ID"

const maxCallbackBody = 1 << 20

func authCheck(h *Handler, tokenService port.TokenService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.Request.Header.Get(authHeaderKey)
		if len(header) == 0 {
			h.handleAbort(ctx, domain.ErrEmptyAuthorizationHeader)
			return
		}

		words := strings.Fields(header)
		if len(words) != 2 {
			h.handleAbort(ctx, domain.ErrInvalidAuthorizationHeader)
			return
		}
		if words[0] != authType {
			h.handleAbort(ctx, domain.ErrInvalidAuthorizationType)
			return
		}
		payload, err := tokenService.VerifyToken(words[1])
		if err != nil {
			h.handleAbort(ctx, domain.ErrInvalidToken)
			return
		}

		ctx.Set(adminPayloadKey, payload)

		ctx.Next()
	}
}

func getAuthPayload(ctx *gin.Context) *port.TokenPayload {
	return ctx.MustGet(adminPayloadKey).(*port.TokenPayload)
}

// preflight answers CORS preflight requests with an empty 204.
func preflight() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method != http.MethodOptions {
			ctx.Next()
			return
		}
		h := ctx.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		ctx.AbortWithStatus(http.StatusNoContent)
	}
}

type requestObserver interface {
	ObserveRequest(method string, route string, status int, seconds float64)
}

func requestLogger(logger *zap.Logger, observer requestObserver) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		elapsed := time.Since(start)

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := ctx.Writer.Status()
		logger.Info("request",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", elapsed))
		if observer != nil {
			observer.ObserveRequest(ctx.Request.Method, route, status, elapsed.Seconds())
		}
	}
}

// secretLookup resolves the shared secret an inbound callback must be signed with.
type secretLookup func(ctx context.Context, c *gin.Context) (string, error)

func brokerSecret(endpoints port.EndpointRepository) secretLookup {
	return func(ctx context.Context, c *gin.Context) (string, error) {
		id := strings.TrimSpace(c.GetHeader(HeaderBrokerID))
		if id == "" {
			return "", domain.ErrSignatureMismatch
		}
		broker, err := endpoints.GetBroker(ctx, id)
		if err != nil {
			return "", err
		}
		return broker.Secret, nil
	}
}

func staticSecret(secret string) secretLookup {
	return func(context.Context, *gin.Context) (string, error) {
		return secret, nil
	}
}

// signatureCheck verifies X-Signature over the raw body and puts the body back for the handler.
// Without enforce a bad or missing signature is only logged.
func signatureCheck(h *Handler, enforce bool, lookup secretLookup) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		body, err := io.ReadAll(http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxCallbackBody))
		if err != nil {
			h.handleAbort(ctx, domain.ErrBadRequest)
			return
		}
		ctx.Request.Body = io.NopCloser(bytes.NewReader(body))

		reject := func(reason error) {
			if enforce {
				h.handleAbort(ctx, domain.ErrSignatureMismatch)
				return
			}
			h.logger.Warn("unverified callback accepted",
				zap.String("path", ctx.Request.URL.Path), zap.Error(reason))
			ctx.Next()
		}

		header := ctx.GetHeader(webhook.HeaderSignature)
		if header == "" {
			reject(domain.ErrSignatureMismatch)
			return
		}
		secret, err := lookup(ctx.Request.Context(), ctx)
		if err != nil {
			reject(err)
			return
		}
		if secret == "" || !webhook.Verify(body, secret, header) {
			reject(domain.ErrSignatureMismatch)
			return
		}
		ctx.Next()
	}
}
