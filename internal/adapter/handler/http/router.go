package http

import (
	_ "github.com/MikeRez0/pointsweep/docs"
	"github.com/MikeRez0/pointsweep/internal/adapter/config"
	"github.com/MikeRez0/pointsweep/internal/core/port"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Router struct {
	*gin.Engine
}

// Handlers groups the endpoint handlers served by the router.
type Handlers struct {
	Batch        *BatchHandler
	Sweep        *SweepHandler
	Callback     *CallbackHandler
	Notification *NotificationHandler
	Payment      *PaymentHandler
	Lineage      *LineageHandler
	Order        *OrderHandler
}

func NewRouter(
	conf *config.Config,
	tokenService port.TokenService,
	endpoints port.EndpointRepository,
	observer requestObserver,
	gatherer prometheus.Gatherer,
	handlers Handlers,
	logger *zap.Logger) (*Router, error) {

	if conf.App.Mode == config.AppModeProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	h := NewHandler(logger)

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger, observer), preflight())

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	api := router.Group("/api")
	{
		api.POST("/broker/callback",
			signatureCheck(h, conf.Broker.EnforceSignature, brokerSecret(endpoints)),
			handlers.Callback.BrokerCallback)
		api.POST("/bank/callback",
			signatureCheck(h, conf.Bank.Secret != "", staticSecret(conf.Bank.Secret)),
			handlers.Callback.BankCallback)

		admin := api.Group("/admin")
		admin.Use(authCheck(h, tokenService))
		{
			prepare := admin.Group("/prepare")
			{
				prepare.GET("/preview", handlers.Batch.PreviewCounts)
				prepare.POST("", handlers.Batch.Prepare)
				prepare.GET("", handlers.Batch.Batches)
				prepare.POST("/:id/approve", handlers.Batch.Approve)
				prepare.POST("/:id/discard", handlers.Batch.Discard)
				prepare.GET("/:id/stats", handlers.Batch.Stats)
				prepare.GET("/:id/orders", handlers.Batch.Drilldown)
			}

			sweep := admin.Group("/sweep")
			{
				sweep.POST("/run", handlers.Sweep.Run)
				sweep.GET("/preview", handlers.Sweep.Preview)
				sweep.POST("/retry", handlers.Sweep.RetryFailed)
			}

			admin.POST("/notifications/:id/retry", handlers.Notification.Retry)
			admin.POST("/payments/mark-paid", handlers.Payment.MarkPaid)
			admin.GET("/lineage", handlers.Lineage.Trace)

			orders := admin.Group("/orders")
			{
				orders.GET("/:id", handlers.Order.GetOrder)
				orders.POST("/:id/cancel", handlers.Order.Cancel)
				orders.POST("/:id/sell", handlers.Order.RequestSell)
				orders.POST("/:id/sell/revert", handlers.Order.RevertSell)
			}
		}
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
