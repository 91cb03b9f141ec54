package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"musebot/services/booking"
)

const paymentSuccessPage = `<html>
    <head><title>Payment Successful</title></head>
    <body style="text-align: center; padding: 50px;">
        <h1>Payment Successful!</h1>
        <p>Your booking is confirmed. A confirmation email has been sent to your email address.</p>
        <p>Thank you for booking with us!</p>
        <a href="/">Return to Home</a>
    </body>
</html>`

const paymentFailurePage = `<html>
    <head><title>Payment Status</title></head>
    <body style="text-align: center; padding: 50px;">
        <h1>Payment Not Completed</h1>
        <p>We couldn't verify your payment. Please try again or contact support.</p>
        <a href="/">Return to Home</a>
    </body>
</html>`

// PaymentHandler serves the payment provider's callback.
type PaymentHandler struct {
	Reconciler *booking.Reconciler
	Logger     *zap.Logger
}

func NewPaymentHandler(reconciler *booking.Reconciler, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Reconciler: reconciler, Logger: logger}
}

// Callback handles the asynchronous payment-link status notification. Unknown
// ids, duplicates and non-paid statuses all get the neutral failure page.
func (h *PaymentHandler) Callback(c *gin.Context) {
	paymentID := c.Query("razorpay_payment_link_id")
	status := c.Query("razorpay_payment_link_status")

	if h.Reconciler.Complete(c.Request.Context(), paymentID, status) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(paymentSuccessPage))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(paymentFailurePage))
}
