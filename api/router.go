package api

import (
	"net/http"

	"propertyhub/api/cart"
	"propertyhub/api/enquiry"
	"propertyhub/api/health"
	"propertyhub/api/middleware"
	"propertyhub/config"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Router Route configuration
type Router struct {
	engine            *gin.Engine
	config            *config.Config
	healthController  *health.Controller
	cartController    *cart.Controller
	enquiryController *enquiry.Controller
}

// NewRouter Create route configuration
func NewRouter(
	cfg *config.Config,
	healthController *health.Controller,
	cartController *cart.Controller,
	enquiryController *enquiry.Controller,
) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(middleware.RequestIDMiddleware()) // 1. Generate request ID first
	engine.Use(middleware.RecoveryMiddleware())  // 2. Recovery middleware
	if cfg.Tracing.Enabled {
		engine.Use(otelgin.Middleware(cfg.App.Name))
	}
	engine.Use(middleware.LoggingMiddleware())                        // 3. Logging middleware
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))                  // 4. CORS
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit)) // 5. Rate limiting

	return &Router{
		engine:            engine,
		config:            cfg,
		healthController:  healthController,
		cartController:    cartController,
		enquiryController: enquiryController,
	}
}

// SetupRoutes Set up all routes
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	r.healthController.RegisterRoutes(apiGroup)

	// Everything below requires the gateway identity headers
	protected := apiGroup.Group("")
	protected.Use(middleware.IdentityMiddleware(&r.config.Identity))
	{
		r.cartController.RegisterRoutes(protected)
		r.enquiryController.RegisterRoutes(protected)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

// GetEngine Get Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
