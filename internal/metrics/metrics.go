// Package metrics exposes the storefront's operational counters. They are
// served by the dedicated metrics endpoint in cmd/server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	inquiriesSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cafe_inquiries_submitted_total",
			Help: "Cake inquiries accepted and persisted",
		},
	)

	ordersSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cafe_orders_submitted_total",
			Help: "Checkouts accepted and persisted",
		},
	)

	orderRevenue = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cafe_order_revenue_kronor_total",
			Help: "Sum of persisted order totals, delivery fees included",
		},
	)

	statusTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cafe_status_transitions_total",
			Help: "Workflow board moves persisted, by item kind and target status",
		},
		[]string{"kind", "status"},
	)

	feedClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cafe_feed_clients",
			Help: "Currently connected admin live-feed clients",
		},
	)
)

func init() {
	prometheus.MustRegister(
		inquiriesSubmitted,
		ordersSubmitted,
		orderRevenue,
		statusTransitions,
		feedClients,
	)
}

// RecordInquirySubmitted counts one persisted inquiry.
func RecordInquirySubmitted() {
	inquiriesSubmitted.Inc()
}

// RecordOrderSubmitted counts one persisted order and its total.
func RecordOrderSubmitted(totalAmount int) {
	ordersSubmitted.Inc()
	orderRevenue.Add(float64(totalAmount))
}

// RecordStatusTransition counts one persisted board move.
func RecordStatusTransition(kind, status string) {
	statusTransitions.WithLabelValues(kind, status).Inc()
}

// FeedClientConnected tracks a live-feed client attaching.
func FeedClientConnected() {
	feedClients.Inc()
}

// FeedClientDisconnected tracks a live-feed client detaching.
func FeedClientDisconnected() {
	feedClients.Dec()
}
