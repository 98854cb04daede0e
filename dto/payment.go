// file: dto/payment.go
package dto

// CreateOrderReq mirrors the gateway order-create contract: amount is in
// minor currency units (paise).
type CreateOrderReq struct {
	Amount   int64                  `json:"amount" binding:"required"`
	Currency string                 `json:"currency" binding:"required"`
	Receipt  string                 `json:"receipt" binding:"required"`
	Notes    map[string]interface{} `json:"notes"`
}

// VerifyPaymentReq is the client's report of the gateway success callback.
// Nothing in it is trusted until the signature is recomputed server-side.
type VerifyPaymentReq struct {
	PaymentID string `json:"payment_id" binding:"required"`
	OrderID   string `json:"order_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// PaymentFailureReq is the gateway failure/dismiss callback.
type PaymentFailureReq struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
