package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "events_created_total",
			Help: "Total events successfully scheduled",
		},
	)

	roomConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "room_conflicts_total",
			Help: "Scheduling attempts rejected because the room was booked",
		},
	)

	enrollments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrollments_total",
			Help: "Enrollment attempts by outcome",
		},
		[]string{"outcome"},
	)
)

func RecordEventCreated() {
	eventsCreated.Inc()
}

func RecordRoomConflict() {
	roomConflicts.Inc()
}

// RecordEnrollment tracks an enrollment outcome: accepted, full, duplicate.
func RecordEnrollment(outcome string) {
	enrollments.WithLabelValues(outcome).Inc()
}
