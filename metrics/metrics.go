// file: metrics/metrics.go
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	OrdersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "gen201_payment_orders_created_total", Help: "Gateway orders created"},
	)
	VerificationsOK = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "gen201_payment_verifications_ok_total", Help: "Payment signatures verified"},
	)
	VerificationsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "gen201_payment_verifications_failed_total", Help: "Payment signature mismatches"},
	)
	GatewayFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "gen201_payment_gateway_failures_total", Help: "Gateway failure/dismiss callbacks"},
	)
	RegistrationsCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "gen201_registrations_completed_total", Help: "Teams persisted after verified payment"},
	)
	PostPaymentFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "gen201_post_payment_failures_total", Help: "Persistence failures after a verified payment (manual reconciliation needed)"},
	)
)

func Register() {
	prometheus.MustRegister(
		OrdersCreated,
		VerificationsOK,
		VerificationsFailed,
		GatewayFailures,
		RegistrationsCompleted,
		PostPaymentFailures,
	)
}
