// file: services/payment_service_test.go
package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/JB-05/gen-201-mbc/config"
)

func signOrder(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	svc := NewPaymentService(&config.Config{
		RazorpayKeyID:     "rzp_test_key",
		RazorpayKeySecret: "test_secret",
	})

	orderID := "order_Abc123"
	paymentID := "pay_Xyz789"
	sig := signOrder("test_secret", orderID, paymentID)

	if !svc.VerifySignature(orderID, paymentID, sig) {
		t.Fatal("valid signature rejected")
	}
}

func TestVerifySignatureTampered(t *testing.T) {
	svc := NewPaymentService(&config.Config{
		RazorpayKeyID:     "rzp_test_key",
		RazorpayKeySecret: "test_secret",
	})

	orderID := "order_Abc123"
	paymentID := "pay_Xyz789"
	sig := []byte(signOrder("test_secret", orderID, paymentID))

	// One flipped byte must fail verification.
	if sig[0] == 'a' {
		sig[0] = 'b'
	} else {
		sig[0] = 'a'
	}
	if svc.VerifySignature(orderID, paymentID, string(sig)) {
		t.Fatal("tampered signature accepted")
	}

	// Identifiers swapped between order and payment must also fail.
	good := signOrder("test_secret", orderID, paymentID)
	if svc.VerifySignature(paymentID, orderID, good) {
		t.Fatal("signature accepted with swapped identifiers")
	}
}

func TestVerifySignatureUnconfigured(t *testing.T) {
	svc := NewPaymentService(&config.Config{})
	if svc.VerifySignature("order_x", "pay_y", "anything") {
		t.Fatal("unconfigured service verified a signature")
	}
}

func TestCreateOrderUnconfigured(t *testing.T) {
	svc := NewPaymentService(&config.Config{})
	if svc.Configured() {
		t.Fatal("service without credentials reports configured")
	}

	_, err := svc.CreateOrder(5000, "INR", "rcpt_test", nil)
	if !errors.Is(err, ErrPaymentNotConfigured) {
		t.Fatalf("want ErrPaymentNotConfigured, got %v", err)
	}
}

func TestCreateOrderPartialCredentials(t *testing.T) {
	// Only one of the two keys present still counts as unconfigured.
	svc := NewPaymentService(&config.Config{RazorpayKeyID: "rzp_test_key"})
	if svc.Configured() {
		t.Fatal("service with only a key id reports configured")
	}
}

func TestGatewayFailureMessages(t *testing.T) {
	known := []string{"payment_cancelled", "BAD_REQUEST_ERROR", "GATEWAY_ERROR", "NETWORK_ERROR", "SERVER_ERROR"}
	seen := map[string]bool{}
	for _, code := range known {
		msg := GatewayFailureMessage(code)
		if msg == "" {
			t.Fatalf("no message for %q", code)
		}
		if seen[msg] {
			t.Fatalf("message for %q not distinct: %q", code, msg)
		}
		seen[msg] = true
	}

	fallback := GatewayFailureMessage("SOMETHING_NEW")
	if fallback == "" || seen[fallback] {
		t.Fatalf("unknown code should get the generic fallback, got %q", fallback)
	}
}
