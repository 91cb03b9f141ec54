package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health reports liveness.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Home greets visitors hitting the bare root.
func Home(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to the Museum Ticket Booking Chatbot!")
}
