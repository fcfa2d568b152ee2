// Package metrics provides Prometheus metrics for the deal workflow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransitionsTotal tracks applied status changes
	TransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roofing_crm",
			Subsystem: "workflow",
			Name:      "transitions_total",
			Help:      "Total number of applied deal status transitions",
		},
		[]string{"from", "to", "direction"},
	)

	// RejectionsTotal tracks updates refused by the validator or the approval gate
	RejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roofing_crm",
			Subsystem: "workflow",
			Name:      "rejections_total",
			Help:      "Total number of rejected deal updates by reason",
		},
		[]string{"reason"},
	)

	// PinSyncFailuresTotal tracks pin updates that failed after a deal write
	PinSyncFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "roofing_crm",
			Subsystem: "workflow",
			Name:      "pin_sync_failures_total",
			Help:      "Total number of pin status updates that failed after a deal write",
		},
	)

	// CommissionEventsTotal tracks administrative commission actions
	CommissionEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roofing_crm",
			Subsystem: "commission",
			Name:      "events_total",
			Help:      "Total number of commission overrides and payouts",
		},
		[]string{"action"},
	)

	// PaymentRequestsTotal tracks invoice payment requests by provider status
	PaymentRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roofing_crm",
			Subsystem: "payments",
			Name:      "requests_total",
			Help:      "Total number of invoice payment requests by provider status",
		},
		[]string{"status"},
	)
)

// RecordTransition records an applied status change
func RecordTransition(from, to string, backward bool) {
	direction := "forward"
	if backward {
		direction = "backward"
	}
	TransitionsTotal.WithLabelValues(from, to, direction).Inc()
}

// RecordRejection records a refused update
func RecordRejection(reason string) {
	RejectionsTotal.WithLabelValues(reason).Inc()
}

// RecordPinSyncFailures adds n failed pin updates
func RecordPinSyncFailures(n int) {
	if n > 0 {
		PinSyncFailuresTotal.Add(float64(n))
	}
}

// RecordCommissionEvent records an override or payout action
func RecordCommissionEvent(action string) {
	CommissionEventsTotal.WithLabelValues(action).Inc()
}

// RecordPaymentRequest records a payment request outcome
func RecordPaymentRequest(status string) {
	PaymentRequestsTotal.WithLabelValues(status).Inc()
}
