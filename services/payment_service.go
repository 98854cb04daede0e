// file: services/payment_service.go
package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/JB-05/gen-201-mbc/config"
	razorpay "github.com/razorpay/razorpay-go"
)

// ErrPaymentNotConfigured is returned when gateway credentials are absent.
// Surfaced as 503 so an operator can tell "broken" from "card declined".
var ErrPaymentNotConfigured = errors.New("payment gateway not configured")

// OrderInfo is the subset of the gateway order we pass back to the client.
type OrderInfo struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// PaymentGateway is what the form controller needs from the payment side.
type PaymentGateway interface {
	Configured() bool
	KeyID() string
	CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (*OrderInfo, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// PaymentService wraps the Razorpay client. The secret never leaves this
// process; order creation and signature verification are server-side only.
type PaymentService struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
}

func NewPaymentService(cfg *config.Config) *PaymentService {
	s := &PaymentService{
		keyID:     cfg.RazorpayKeyID,
		keySecret: cfg.RazorpayKeySecret,
	}
	if cfg.PaymentConfigured() {
		s.client = razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	}
	return s
}

func (s *PaymentService) Configured() bool {
	return s.client != nil
}

// KeyID is the public key id the checkout widget needs. Safe to expose.
func (s *PaymentService) KeyID() string {
	return s.keyID
}

// CreateOrder asks the gateway to create a pending order for the fee.
func (s *PaymentService) CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (*OrderInfo, error) {
	if !s.Configured() {
		return nil, ErrPaymentNotConfigured
	}
	if notes == nil {
		notes = map[string]interface{}{}
	}

	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
		"notes":    notes,
	}
	body, err := s.client.Order.Create(data, nil)
	if err != nil {
		return nil, err
	}

	return &OrderInfo{
		ID:       asString(body["id"]),
		Amount:   asInt64(body["amount"]),
		Currency: asString(body["currency"]),
		Receipt:  asString(body["receipt"]),
		Status:   asString(body["status"]),
	}, nil
}

// VerifySignature recomputes the expected signature for order_id|payment_id
// with the key secret and compares in constant time. Equality proves the
// success callback was not forged or replayed with mismatched identifiers.
func (s *PaymentService) VerifySignature(orderID, paymentID, signature string) bool {
	if s.keySecret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(s.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// The gateway response is decoded into map[string]interface{}, so numbers
// arrive as float64.
func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	default:
		return 0
	}
}
