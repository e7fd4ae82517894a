package v1

import (
	"taxpro-backend/config"
	"taxpro-backend/internal/delivery/http/middleware"
	"taxpro-backend/internal/delivery/http/web"
	"taxpro-backend/internal/domain"
	"taxpro-backend/internal/usecase"
	"taxpro-backend/pkg/apperror"
	"taxpro-backend/pkg/security"
	"taxpro-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	HealthUC  usecase.HealthUsecase
	Validator *validation.Validator
	Audit     *security.SecurityLogger
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(web.Templates())

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.AllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config.IsProduction()))
	r.Use(middleware.ErrorHandler())

	// One limiter shared by the JSON and the form endpoint so both count
	// against the same per-IP budget
	contactLimiter := middleware.RateLimitMiddleware(
		middleware.ContactRateLimitConfig(deps.Config.RateLimitContact, deps.Config.RateLimitWindow()),
	)

	// Server-rendered page
	page := r.Group("")
	page.Use(middleware.CSRFMiddleware(deps.Config.IsProduction()))
	web.NewPageHandler(page, deps.ContactUC, deps.Validator, deps.Audit, contactLimiter)

	v1 := r.Group("/v1")

	NewHealthHandler(v1, deps.HealthUC)
	NewContactHandler(v1, deps.ContactUC, deps.Validator, deps.Audit, contactLimiter) // Contact form (no auth required)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperror.NotFound("Route not found"))
	})

	return r
}
