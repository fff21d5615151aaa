package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tahseel-app/tahseel-backend/config"
	"github.com/tahseel-app/tahseel-backend/handlers"
	"github.com/tahseel-app/tahseel-backend/middleware"
)

// Dependencies holds everything required to set up the routes.
type Dependencies struct {
	Config             *config.Config
	AuthHandler        *handlers.AuthHandler
	ProjectHandler     *handlers.ProjectHandler
	TripHandler        *handlers.TripHandler
	ParticipantHandler *handlers.ParticipantHandler
	PaymentHandler     *handlers.PaymentHandler
	ReportHandler      *handlers.ReportHandler
	AdminHandler       *handlers.AdminHandler
	HealthHandler      *handlers.HealthHandler
}

// SetupRouter configures and returns the main Gin engine with all routes
// defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	if deps.Config.Server.Environment == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	// Health and metrics are unauthenticated.
	r.GET("/health", deps.HealthHandler.Check)
	r.GET("/health/liveness", deps.HealthHandler.Liveness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		// Public auth routes.
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", deps.AuthHandler.Signup)
			auth.POST("/login", deps.AuthHandler.Login)
			auth.GET("/verify-email/:token", deps.AuthHandler.VerifyEmail)
			auth.POST("/resend-verification", deps.AuthHandler.ResendVerification)
			auth.POST("/forgot-password", deps.AuthHandler.ForgotPassword)
			auth.POST("/reset-password/:token", deps.AuthHandler.ResetPassword)
		}

		authRoutes := v1.Group("")
		authRoutes.Use(middleware.AuthMiddleware(&deps.Config.Server))
		{
			authRoutes.GET("/users/me", deps.AuthHandler.GetMe)

			projectRoutes := authRoutes.Group("/projects")
			{
				projectRoutes.POST("", deps.ProjectHandler.Create)
				projectRoutes.GET("", deps.ProjectHandler.List)
				projectRoutes.GET("/:id", deps.ProjectHandler.Get)
				projectRoutes.PATCH("/:id", deps.ProjectHandler.Update)
				projectRoutes.DELETE("/:id", deps.ProjectHandler.Delete)
				projectRoutes.GET("/:id/report", deps.ReportHandler.ProjectSummary)

				memberRoutes := projectRoutes.Group("/:id/members")
				{
					memberRoutes.GET("", deps.ProjectHandler.ListMembers)
					memberRoutes.POST("", deps.ProjectHandler.AddMember)
					memberRoutes.PATCH("/:memberId", deps.ProjectHandler.UpdateMemberRole)
					memberRoutes.DELETE("/:memberId", deps.ProjectHandler.RemoveMember)
				}
			}

			tripRoutes := authRoutes.Group("/trips")
			{
				tripRoutes.POST("", deps.TripHandler.Create)
				tripRoutes.GET("", deps.TripHandler.List)
				tripRoutes.GET("/:id", deps.TripHandler.Get)
				tripRoutes.PATCH("/:id", deps.TripHandler.Update)
				tripRoutes.DELETE("/:id", deps.TripHandler.Delete)
				tripRoutes.GET("/:id/participants", deps.ParticipantHandler.ListByTrip)
				tripRoutes.GET("/:id/payments", deps.PaymentHandler.ListByTrip)
				tripRoutes.GET("/:id/report", deps.ReportHandler.TripReport)
			}

			participantRoutes := authRoutes.Group("/participants")
			{
				participantRoutes.POST("", deps.ParticipantHandler.Create)
				participantRoutes.GET("/:id", deps.ParticipantHandler.Get)
				participantRoutes.PATCH("/:id", deps.ParticipantHandler.Update)
				participantRoutes.DELETE("/:id", deps.ParticipantHandler.Delete)
			}

			paymentRoutes := authRoutes.Group("/payments")
			{
				paymentRoutes.POST("", deps.PaymentHandler.Create)
				paymentRoutes.GET("/:id", deps.PaymentHandler.Get)
				paymentRoutes.PATCH("/:id", deps.PaymentHandler.Update)
				paymentRoutes.DELETE("/:id", deps.PaymentHandler.Delete)
			}

			adminRoutes := authRoutes.Group("/admin")
			{
				adminRoutes.GET("/users", deps.AdminHandler.ListUsers)
				adminRoutes.GET("/projects", deps.AdminHandler.ListProjects)
				adminRoutes.GET("/stats", deps.AdminHandler.Stats)
				adminRoutes.POST("/users/:id/promote", deps.AdminHandler.Promote)
				adminRoutes.POST("/users/:id/demote", deps.AdminHandler.Demote)
			}
		}
	}

	return r
}
