// Package metrics holds the node's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Instruction results.
const (
	ResultChanged = "changed"
	ResultNoop    = "noop"
	ResultFailed  = "failed"
)

var (
	// InstructionsTotal counts processed instructions by opcode and result.
	InstructionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialdapp_instructions_total",
			Help: "Total number of processed instructions",
		},
		[]string{"opcode", "result"},
	)

	// SlotWritesTotal counts state slots persisted after a change.
	SlotWritesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "socialdapp_slot_writes_total",
			Help: "Total number of state slot writes",
		},
	)

	// PayloadBytes observes the encoded record size after each write.
	PayloadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "socialdapp_payload_bytes",
			Help:    "Encoded record size after a slot write",
			Buckets: prometheus.ExponentialBuckets(16, 4, 9),
		},
	)

	// RPCRequestsTotal counts gRPC calls by method and status code.
	RPCRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialdapp_rpc_requests_total",
			Help: "Total number of gRPC requests",
		},
		[]string{"method", "code"},
	)
)

// ObserveInstruction records one processed instruction. payloadLen is only
// looked at for ResultChanged.
func ObserveInstruction(opcode, result string, payloadLen int) {
	InstructionsTotal.WithLabelValues(opcode, result).Inc()
	if result == ResultChanged {
		SlotWritesTotal.Inc()
		PayloadBytes.Observe(float64(payloadLen))
	}
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
