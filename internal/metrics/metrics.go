// Package metrics wires the Function Encoder/Decoder to Prometheus
// counters through the nil-safe Collector type, so the codec core
// itself never imports client_golang. The packed-cell counter is
// exposed through AddPackedCells; the Bit/Ref Packer does not call it.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collector is the metrics surface the encoder/decoder call into. A
// nil *Collector behaves like a Collector whose methods are no-ops.
type Collector struct {
	encodeTotal      *prometheus.CounterVec
	decodeTotal      *prometheus.CounterVec
	packedCellsTotal prometheus.Counter
}

// New registers a fresh set of counters on reg. Passing
// prometheus.NewRegistry() keeps tests isolated from the global
// DefaultRegisterer.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		encodeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "abicodec",
			Name:      "encode_total",
			Help:      "Function encode calls, partitioned by outcome.",
		}, []string{"outcome"}),
		decodeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "abicodec",
			Name:      "decode_total",
			Help:      "Function decode calls, partitioned by outcome.",
		}, []string{"outcome"}),
		packedCellsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "abicodec",
			Name:      "packed_cells_total",
			Help:      "Cells produced by the bit/ref packer.",
		}),
	}
	for _, coll := range []prometheus.Collector{c.encodeTotal, c.decodeTotal, c.packedCellsTotal} {
		if err := reg.Register(coll); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collector) IncEncode(ok bool) {
	if c == nil {
		return
	}
	c.encodeTotal.WithLabelValues(outcome(ok)).Inc()
}

func (c *Collector) IncDecode(ok bool) {
	if c == nil {
		return
	}
	c.decodeTotal.WithLabelValues(outcome(ok)).Inc()
}

func (c *Collector) AddPackedCells(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.packedCellsTotal.Add(float64(n))
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "error"
}
