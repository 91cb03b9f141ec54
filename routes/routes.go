package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"musebot/handlers"
	"musebot/middleware"
	"musebot/monitoring"
)

// HandlerBundle groups the handlers the router wires up.
type HandlerBundle struct {
	Chat    *handlers.ChatHandler
	Payment *handlers.PaymentHandler

	// FrontendDir optionally points at a prebuilt frontend bundle.
	FrontendDir string
}

// RegisterChatRoutes registers the conversational endpoint. The session
// middleware issues the opaque token used for booking-dialogue affinity.
func RegisterChatRoutes(r *gin.Engine, hb *HandlerBundle) {
	ask := []gin.HandlerFunc{middleware.SessionToken(), hb.Chat.Ask}
	r.POST("/ask", ask...)
	r.POST("/api/ask", ask...)
}

// RegisterPaymentRoutes registers the payment provider callback. Razorpay
// redirects with GET; POST is accepted for provider-side notifications.
func RegisterPaymentRoutes(r *gin.Engine, hb *HandlerBundle) {
	for _, path := range []string{"/payment-callback", "/api/payment-callback"} {
		r.GET(path, hb.Payment.Callback)
		r.POST(path, hb.Payment.Callback)
	}
}

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/api/health", handlers.Health)
}

// RegisterRoutes wires all endpoints onto the router.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.SessionTokenHeader},
		ExposeHeaders: []string{middleware.SessionTokenHeader},
		MaxAge:        12 * time.Hour,
	}))

	RegisterChatRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterHealthRoute(r)
	r.GET("/metrics", monitoring.Handler())

	r.GET("/", handlers.Home)
	if hb.FrontendDir != "" {
		r.Static("/app", hb.FrontendDir)
	}
}
