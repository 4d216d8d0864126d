// Package metrics defines and registers all custom Prometheus metrics for the
// OdontoCare services. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry on package init through
// promauto; both services expose them on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "odontocare"

// ── Appointment metrics ───────────────────────────────────────────────────────

// AppointmentsBookedTotal counts appointments persisted by the citas service.
// Label:
//   - result: "created" or "replayed" (Idempotency-Key hit)
var AppointmentsBookedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_booked_total",
		Help:      "Total number of appointment bookings, by result.",
	},
	[]string{"result"},
)

// AppointmentsRejectedTotal counts bookings and updates rejected by a business rule.
// Label:
//   - reason: "double_booking", "patient_inactive", "patient_not_found",
//     "doctor_not_found", "center_not_found", "upstream"
var AppointmentsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_rejected_total",
		Help:      "Total number of appointment writes rejected, by reason.",
	},
	[]string{"reason"},
)

// AppointmentsCancelledTotal counts status flips to "cancelada".
var AppointmentsCancelledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_cancelled_total",
		Help:      "Total number of appointments cancelled.",
	},
)

// ── Gestión client metrics ────────────────────────────────────────────────────

// DirectoryLookupDuration measures calls from citas to the gestión service.
// Labels:
//   - resource: "patient", "doctor", "doctor_by_username", "center"
//   - outcome: "ok", "not_found", "error"
var DirectoryLookupDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "directory_lookup_duration_seconds",
		Help:      "Duration of lookups against the gestión service.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"resource", "outcome"},
)

// ── Event dispatch metrics ────────────────────────────────────────────────────

// EventsQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "appointment_events_queue_depth",
		Help:      "Current number of appointment events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// EventsDeliveredTotal counts deliveries of appointment events to sinks.
// Labels:
//   - sink: "mongo_audit", "rabbitmq"
//   - result: "ok" or "error"
var EventsDeliveredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointment_events_delivered_total",
		Help:      "Total number of appointment event deliveries, by sink and result.",
	},
	[]string{"sink", "result"},
)

// ── Gestión metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "unknown_user", "bad_password"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistryCreatedTotal counts entities created through the gestión API.
// Label:
//   - entity: "user", "doctor", "patient", "center"
var RegistryCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registry_created_total",
		Help:      "Total number of gestión entities created, by entity.",
	},
	[]string{"entity"},
)

// CompensationsTotal counts user rows deleted because the dependent doctor or
// patient insert failed.
var CompensationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registry_compensations_total",
		Help:      "Total number of compensating user deletions, by entity.",
	},
	[]string{"entity"},
)
