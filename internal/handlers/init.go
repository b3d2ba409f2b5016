package handlers

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rizperdana/share-link-gan/internal/tracking"
	"github.com/rizperdana/share-link-gan/pkg/logging"
)

var (
	db     *sql.DB
	logger logging.Logger

	validator *tracking.Validator
	writer    *tracking.Writer

	eventsAccepted *prometheus.CounterVec
	eventsRejected *prometheus.CounterVec
)

// Init initializes the handlers with database and logger
func Init(database *sql.DB, log logging.Logger) {
	db = database
	logger = log
}

// InitTracking wires the tracking pipeline into the track endpoint
func InitTracking(v *tracking.Validator, w *tracking.Writer, accepted, rejected *prometheus.CounterVec) {
	validator = v
	writer = w
	eventsAccepted = accepted
	eventsRejected = rejected
}
