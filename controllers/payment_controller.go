// file: controllers/payment_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/JB-05/gen-201-mbc/dto"
	"github.com/JB-05/gen-201-mbc/metrics"
	"github.com/JB-05/gen-201-mbc/services"
	"github.com/gin-gonic/gin"
)

// PaymentController exposes the raw gateway endpoints. These return the
// gateway wire shapes directly rather than the api envelope, since the
// checkout script consumes them as-is.
type PaymentController struct {
	gateway services.PaymentGateway
}

func NewPaymentController(gateway services.PaymentGateway) *PaymentController {
	return &PaymentController{gateway: gateway}
}

// CreateOrder creates a pending gateway order for the registration fee.
func (pc *PaymentController) CreateOrder(c *gin.Context) {
	if !pc.gateway.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Payment service is not configured. Please contact administrator.",
		})
		return
	}

	var req dto.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing required fields: amount, currency, receipt",
		})
		return
	}

	order, err := pc.gateway.CreateOrder(req.Amount, req.Currency, req.Receipt, req.Notes)
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Payment service is not configured. Please contact administrator.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create payment order",
		})
		return
	}
	metrics.OrdersCreated.Inc()

	c.JSON(http.StatusOK, order)
}

// VerifyPayment recomputes the callback signature server-side.
func (pc *PaymentController) VerifyPayment(c *gin.Context) {
	var req dto.VerifyPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing required fields: payment_id, order_id, signature",
		})
		return
	}

	verified := pc.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature)
	if verified {
		metrics.VerificationsOK.Inc()
	} else {
		metrics.VerificationsFailed.Inc()
	}

	c.JSON(http.StatusOK, gin.H{"verified": verified})
}
