package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/swisspay/swisspay_backend/internal/core/ports/services"
	"github.com/swisspay/swisspay_backend/internal/middleware"
	"github.com/swisspay/swisspay_backend/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using
// interfaces.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	registerCustomValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public authentication routes, rate limited per IP to slow down
	// credential stuffing
	authLimiter := limiter.New(memory.NewStore(), limiter.Rate{Period: time.Minute, Limit: 10})
	auth := r.Group("/auth", middleware.RateLimit(authLimiter))
	registerAuthRoutes(auth, services.Account, cfg)

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the specific
// route registrations.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerAccountRoutes(v1, services.Account)
	registerHistoryRoutes(v1, services.History, services.Account)
	registerCardRoutes(v1, services.Card)
	registerSubscriptionRoutes(v1, services.Subscription)

	// Transfers get their own, tighter rate limit
	transferLimiter := limiter.New(memory.NewStore(), limiter.Rate{Period: time.Minute, Limit: 30})
	transfers := v1.Group("", middleware.RateLimit(transferLimiter))
	registerTransferRoutes(transfers, services.Ledger, services.Card)
}
