package storage

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultCommit   = "commit"
	resultRollback = "rollback"
)

// batches counts executed batches by outcome.
var batches = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Namespace: "seldo",
		Subsystem: "storage",
		Name:      "batches_total",
		Help:      "Number of statement batches, differentiated by outcome.",
	},
	[]string{"result"},
)
