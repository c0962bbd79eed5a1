package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/api/handlers"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/middleware"
)

const apiVersion = "1.0.0"

// HealthChecker reports whether a backing service is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Dependencies carries everything the route table wires together.
type Dependencies struct {
	Auth     *middleware.AuthMiddleware
	DB       HealthChecker
	Redis    HealthChecker
	Search   *handlers.SearchHandler
	Chat     *handlers.ChatHandler
	Reviews  *handlers.ReviewHandler
	Users    *handlers.UserHandler
	Alerts   *handlers.AlertHandler
	Payments *handlers.PaymentsHandler
	Feedback *handlers.FeedbackHandler
	System   *handlers.SystemHandler
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Services  Services  `json:"services"`
}

type Services struct {
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

func SetupRoutes(router *gin.Engine, deps *Dependencies) {
	router.GET("/health", healthCheck(deps.DB, deps.Redis))
	router.GET("/go", handlers.Redirect)

	v1 := router.Group("/api/v1")
	{
		// Search serves guests; identity is resolved but never required.
		v1.GET("/search", deps.Auth.IdentifyUser(), deps.Search.Search)
		v1.GET("/energy", deps.Auth.IdentifyUser(), deps.Search.Energy)

		v1.POST("/chat", deps.Chat.Chat)

		reviews := v1.Group("/reviews")
		{
			reviews.GET("", deps.Reviews.ListReviews)
			reviews.POST("", deps.Reviews.CreateReview)
			reviews.POST("/:id/helpful", deps.Reviews.MarkHelpful)
		}

		users := v1.Group("/users")
		{
			users.POST("/register", deps.Users.Register)
			users.POST("/login", deps.Users.Login)
			users.GET("/profile", deps.Auth.RequireAuth(), deps.Users.Profile)
			users.PUT("/profile", deps.Auth.RequireAuth(), deps.Users.UpdateProfile)
		}

		alerts := v1.Group("/alerts", deps.Auth.IdentifyUser())
		{
			alerts.GET("", deps.Alerts.ListAlerts)
			alerts.POST("", deps.Alerts.CreateAlert)
			alerts.DELETE("/:id", deps.Alerts.DeleteAlert)
		}

		payments := v1.Group("/payments")
		{
			payments.POST("/invoice", deps.Auth.IdentifyUser(), deps.Payments.CreateInvoice)
			// The provider signs the webhook; no user identity involved.
			payments.POST("/webhook", deps.Payments.Webhook)
		}

		feedback := v1.Group("/feedback", deps.Auth.IdentifyUser())
		{
			feedback.POST("", deps.Feedback.RecordFeedback)
			feedback.GET("/accuracy", deps.Feedback.Accuracy)
		}

		v1.GET("/system/stats", deps.System.Stats)
	}
}

func healthCheck(db, redis HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := HealthResponse{
			Status:    "ok",
			Timestamp: time.Now(),
			Version:   apiVersion,
			Services: Services{
				Database: "ok",
				Redis:    "ok",
			},
		}

		if db == nil || db.HealthCheck(c.Request.Context()) != nil {
			response.Services.Database = "error"
			response.Status = "degraded"
		}
		if redis == nil || redis.HealthCheck(c.Request.Context()) != nil {
			response.Services.Redis = "error"
			response.Status = "degraded"
		}

		statusCode := http.StatusOK
		if response.Status == "degraded" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, response)
	}
}
