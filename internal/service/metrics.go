package service

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts service operations by outcome.
type Metrics struct {
	operations  *prometheus.CounterVec
	stagedBytes prometheus.Counter
}

// NewMetrics registers the service collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spot_operations_total",
				Help: "Tourist spot operations by operation and result.",
			},
			[]string{"op", "result"},
		),
		stagedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spot_staged_image_bytes_total",
			Help: "Bytes of images staged into storage.",
		}),
	}
	for _, c := range []prometheus.Collector{m.operations, m.stagedBytes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(op string, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.operations.WithLabelValues(op, result).Inc()
}

func (m *Metrics) staged(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.stagedBytes.Add(float64(n))
}
