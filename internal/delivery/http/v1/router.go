package v1

import (
	"time"

	"jobboard-backend/config"
	"jobboard-backend/internal/delivery/http/middleware"
	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/logger"
	"jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC           domain.AuthUsecase
	JobUC            domain.JobUsecase
	CandidateUC      domain.CandidateUsecase
	ApplicationUC    domain.ApplicationUsecase
	AdminUC          domain.AdminUsecase
	CompanyProfileUC domain.CompanyProfileUsecase
	ContactUC        domain.ContactUsecase
	PlanUC           domain.PlanUsecase
	CVUC             domain.CVUsecase
	BlogUC           domain.BlogUsecase
	NotificationUC   domain.NotificationUsecase
	HealthUC         domain.HealthUsecase
	Verifier         middleware.TokenVerifier
	Config           *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	r := gin.New()
	if err := r.SetTrustedProxies(deps.Config.TrustedProxies); err != nil {
		logger.Log.Warn("Invalid TRUSTED_PROXIES, trusting none", "error", err)
		_ = r.SetTrustedProxies(nil)
	}

	// Global Middlewares
	r.Use(middleware.RequestIDMiddleware())
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config.IsProduction()))
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL, deps.Config.IsProduction()))
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(
		deps.Config.RateLimitGlobalThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	)))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	if deps.Config.SwaggerEnabled {
		v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Public routes
	NewHealthHandler(v1, deps.HealthUC)
	NewContactHandler(v1.Group("", middleware.RateLimitMiddleware(middleware.WriteRateLimitConfig())), deps.ContactUC)

	// Public content that counts views per signed-in viewer when possible
	views := v1.Group("", middleware.OptionalAuthMiddleware(deps.Verifier))

	// Token only: the local user may not exist yet
	tokenOnly := v1.Group("", middleware.TokenMiddleware(deps.Verifier), middleware.RateLimitMiddleware(middleware.WriteRateLimitConfig()))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Verifier, deps.AuthUC))
	{
		NewAuthHandler(tokenOnly, protected, deps.AuthUC)
		NewJobHandler(views, protected, deps.JobUC)
		NewCandidateHandler(protected, deps.CandidateUC)
		NewApplicationHandler(protected, deps.ApplicationUC)
		NewCompanyProfileHandler(v1, protected, deps.CompanyProfileUC)
		NewPlanHandler(v1, protected, deps.PlanUC)
		NewCVHandler(protected, deps.CVUC)
		NewBlogHandler(views, protected, deps.BlogUC)
		NewNotificationHandler(protected, deps.NotificationUC)
		NewAdminHandler(protected, deps.AdminUC)
	}

	return r
}
