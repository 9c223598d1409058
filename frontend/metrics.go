package frontend

import (
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/xerrors"
)

type metrics struct {
	responses *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jobprogress",
			Name:      "responses_total",
			Help:      "Number of progress responses served, by status.",
		}, []string{"status"}),
	}
	if err := reg.Register(m.responses); err != nil {
		return nil, xerrors.Errorf("register response counter: %w", err)
	}
	return m, nil
}

func (m *metrics) observe(status string) {
	m.responses.WithLabelValues(status).Inc()
}
