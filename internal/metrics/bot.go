package metrics

import "github.com/prometheus/client_golang/prometheus"

// Bot-level Prometheus metrics.
var (
	ResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "munbot",
			Name:      "resolutions_total",
			Help:      "Document resolutions by outcome",
		},
		[]string{"outcome"}, // resolved / ambiguous / no_match / missing_input
	)

	AppointmentsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "munbot",
			Name:      "appointments_created_total",
			Help:      "Total appointments booked",
		},
	)

	AppointmentsConfirmedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "munbot",
			Name:      "appointments_confirmed_total",
			Help:      "Total appointments confirmed",
		},
	)

	ActiveAppointments = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "munbot",
			Name:      "active_appointments",
			Help:      "Number of booked (non-available) appointment slots",
		},
	)

	ReminderErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "munbot",
			Name:      "reminder_errors_total",
			Help:      "Reminder delivery errors by channel",
		},
		[]string{"channel"}, // email / whatsapp
	)

	ReminderRunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "munbot",
			Name:      "reminder_run_duration_seconds",
			Help:      "Duration of one reminder sweep",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	ModelRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "munbot",
			Name:      "model_requests_total",
			Help:      "Language model fallback requests",
		},
		[]string{"status"}, // success / error
	)

	AnswerSourceTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "munbot",
			Name:      "answer_source_total",
			Help:      "Answers by source",
		},
		[]string{"source"}, // document / model / none
	)
)

var botMetricsRegistered bool

// RegisterBotMetrics registers the bot metrics. Must be called once from main.
func RegisterBotMetrics() {
	if botMetricsRegistered {
		return
	}
	prometheus.MustRegister(ResolutionsTotal)
	prometheus.MustRegister(AppointmentsCreatedTotal)
	prometheus.MustRegister(AppointmentsConfirmedTotal)
	prometheus.MustRegister(ActiveAppointments)
	prometheus.MustRegister(ReminderErrorsTotal)
	prometheus.MustRegister(ReminderRunDuration)
	prometheus.MustRegister(ModelRequestsTotal)
	prometheus.MustRegister(AnswerSourceTotal)
	botMetricsRegistered = true
}
