package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"explorerScope/internal/search"
)

// Config controls the HTTP surface.
type Config struct {
	RequestTimeout time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	Metrics        bool
	Health         HealthCheck
}

// Router is the explorer HTTP handler. Close releases the rate limiter.
type Router struct {
	*gin.Engine
	limiter *RateLimiter
}

func Init(svc Explorer, cfg Config, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger), Cors())

	router := &Router{Engine: r}
	if cfg.RateLimitRPS > 0 {
		router.limiter = NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)
	}

	r.GET("/healthz", HealthEndpoint(cfg.Health))
	if cfg.Metrics {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	group := r.Group("/api")
	if router.limiter != nil {
		group.Use(router.limiter.Middleware())
	}
	group.Use(Timeout(cfg.RequestTimeout))

	group.GET("/search", SearchEndpoint(svc))
	group.POST("/search", SearchEndpoint(svc))
	group.GET("/block", LookupEndpoint(svc, search.KindBlockHeight))
	group.GET("/transaction", LookupEndpoint(svc, search.KindTxHash))
	group.GET("/blocks", BlocksEndpoint(svc))
	group.GET("/ibc/client", LookupEndpoint(svc, search.KindIbcClient))
	group.GET("/ibc/channel", LookupEndpoint(svc, search.KindIbcChannel))
	group.GET("/ibc/connection", LookupEndpoint(svc, search.KindIbcConnection))
	group.GET("/ibc/clients", IbcClientsEndpoint(svc))
	return router
}

func (r *Router) Close() {
	if r.limiter != nil {
		r.limiter.Stop()
	}
}
