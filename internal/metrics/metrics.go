// Package metrics registers the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RPCCalls counts RPCs by procedure and result code.
	RPCCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boatfinance_rpc_calls_total",
			Help: "RPC calls by procedure and result code",
		},
		[]string{"procedure", "code"},
	)

	// Calculations counts computed loans by kind (ephemeral, saved, scenario).
	Calculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boatfinance_calculations_total",
			Help: "Loan calculations computed",
		},
		[]string{"kind"},
	)

	// CalculationErrors counts failed manager operations by error code.
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boatfinance_calculation_errors_total",
			Help: "Failed finance operations by operation and error code",
		},
		[]string{"operation", "code"},
	)

	// RecordsDeleted counts saved calculations removed by their owners.
	RecordsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "boatfinance_records_deleted_total",
			Help: "Saved calculations deleted",
		},
	)

	// SharesIssued counts newly minted share tokens. Repeat shares that
	// return an existing token are not counted.
	SharesIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "boatfinance_share_tokens_issued_total",
			Help: "Share tokens issued",
		},
	)
)
