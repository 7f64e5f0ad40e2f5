package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"frontdesk/handlers"
	"frontdesk/middleware"
)

// RegisterTurnRoutes registers the per-turn dialogue endpoints used by the
// channel adapters.
func RegisterTurnRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.Use(middleware.AdapterAuthMiddleware())
		api.POST("/turns", hb.HandleTurn)
		api.POST("/sessions/:id/reset", hb.ResetSession)
		api.GET("/bookings", hb.ListBookings)
		api.GET("/bookings/:caseId", hb.GetBooking)
	}
}

// RegisterTenantRoutes registers tenant configuration endpoints. These are
// guarded by the tenant admin key rather than an adapter token.
func RegisterTenantRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/tenants")
	{
		api.GET("/:id/slots", hb.GetSlotConfig)
		api.PUT("/:id/slots", hb.UpdateSlotConfig)
		api.PUT("/:id/knowledge", hb.UpsertKnowledgeSnippet)
		api.POST("/:id/token", hb.MintAdapterToken)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Admin-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterTurnRoutes(r, hb)
	RegisterTenantRoutes(r, hb)
	RegisterHealthRoute(r)
}
