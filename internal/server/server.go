package server

import (
	"context"
	"net/http"

	"unbroken/internal/analytics"
	"unbroken/internal/auth"
	"unbroken/internal/config"
	"unbroken/internal/email"
	"unbroken/internal/member"
	"unbroken/internal/plan"
	"unbroken/internal/sessionlog"
	"unbroken/internal/subscription"
	"unbroken/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(50, 100))

	planRepo := plan.NewRepository(db)
	memberRepo := member.NewRepository(db)
	subscriptionRepo := subscription.NewRepository(db)
	sessionlogRepo := sessionlog.NewRepository(db)
	analyticsRepo := analytics.NewRepository(db)
	userRepo := user.NewRepository(db)

	planService := plan.NewService(planRepo)
	memberService := member.NewService(memberRepo)
	subscriptionService := subscription.NewService(subscriptionRepo, memberRepo, planRepo, emailService)
	analyticsService := analytics.NewService(analyticsRepo)
	userService := user.NewService(userRepo, cfg.JWTSecret)

	planHandler := plan.NewHandler(planService)
	memberHandler := member.NewHandler(memberService)
	subscriptionHandler := subscription.NewHandler(subscriptionService)
	sessionlogHandler := sessionlog.NewHandler(sessionlogRepo)
	analyticsHandler := analytics.NewHandler(analyticsService)
	userHandler := user.NewHandler(userService)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.RefreshToken)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.GET("/plans", planHandler.ListActive)
		protected.POST("/members", memberHandler.Upsert)
		protected.GET("/members/:document", memberHandler.FindByDocument)
		protected.GET("/members/:document/subscription", subscriptionHandler.Current)
		protected.POST("/subscriptions/renew", subscriptionHandler.RegisterOrRenew)
		protected.POST("/subscriptions/cancel", subscriptionHandler.Cancel)
		protected.POST("/sessions/use", subscriptionHandler.UseSession)
		protected.GET("/logs", sessionlogHandler.Recent)
		protected.GET("/analytics/monthly", analyticsHandler.MonthlyReport)
	}

	adminMiddleware := auth.RequireRole("admin")
	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("/plans", planHandler.Create)
		admin.PUT("/plans/:planID", planHandler.Update)
		admin.POST("/plans/:planID/toggle", planHandler.ToggleActive)
		admin.DELETE("/plans/:planID", planHandler.Delete)
		admin.DELETE("/members/:memberID", memberHandler.Delete)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: router,
		},
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
