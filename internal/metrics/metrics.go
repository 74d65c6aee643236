// Package metrics records plane and command activity in the default
// Prometheus registry and can dump it as a node-exporter textfile.
package metrics

import (
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/piwi3910/cento/internal/engine"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	commandLabel   = "command"
	operationLabel = "operation"
	stageLabel     = "stage"
	errTypeLabel   = "error_type"
)

var (
	planeOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cento_plane_operations_total",
		Help: "The number of plane operations, by kind.",
	}, []string{operationLabel})

	cycleFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cento_cycle_failures_total",
		Help: "The cycles that broke the tiling, by stage.",
	}, []string{stageLabel})

	commandErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cento_command_errors_total",
		Help: "The errors returned by CLI commands.",
	}, []string{
		commandLabel,
		errTypeLabel,
	})

	commandLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "cento_command_duration_seconds",
		Help: "The time to run a CLI command.",
	}, []string{commandLabel})

	tileCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "cento_tiles",
		Help: "The number of tiles in the last plane, by kind.",
	}, []string{"kind"})
)

// Operation label values.
const (
	OpInsert       = "insert"
	OpInsertReject = "insert_reject"
	OpRemove       = "remove"
	OpSplit        = "split"
	OpJoin         = "join"
	OpFind         = "find"
	OpFindStep     = "find_step"
)

// InstrumentStats adds a plane's operation counts.
func InstrumentStats(s engine.Stats) {
	for op, n := range map[string]int{
		OpInsert:       s.Inserts,
		OpInsertReject: s.InsertRejects,
		OpRemove:       s.Removes,
		OpSplit:        s.Splits,
		OpJoin:         s.Joins,
		OpFind:         s.Finds,
		OpFindStep:     s.FindSteps,
	} {
		planeOperations.With(prometheus.Labels{operationLabel: op}).Add(float64(n))
	}
}

// InstrumentCycle records a finished insert/remove cycle.
func InstrumentCycle(res engine.CycleResult) {
	InstrumentStats(res.Stats)
	if res.Failure != nil {
		cycleFailures.With(prometheus.Labels{stageLabel: string(res.Failure.Stage)}).Inc()
	}
	InstrumentTiles(res.Final.CountSpace(), len(res.Final)-res.Final.CountSpace())
}

// InstrumentTiles sets the tile gauges.
func InstrumentTiles(space, solid int) {
	tileCount.With(prometheus.Labels{"kind": "space"}).Set(float64(space))
	tileCount.With(prometheus.Labels{"kind": "solid"}).Set(float64(solid))
}

// InstrumentCommand observes a command's latency and, when err is not nil,
// counts it by error type.
func InstrumentCommand(command string, start time.Time, err error) {
	commandLatency.With(prometheus.Labels{
		commandLabel: command,
	}).Observe(time.Since(start).Seconds())

	if err != nil {
		commandErrors.
			With(prometheus.Labels{
				commandLabel: command,
				errTypeLabel: errors.Type(err),
			}).
			Inc()
	}
}

// WriteTextfile writes every metric of the default registry to path.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
