package bridge

import (
	"math/big"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes the bridge's Prometheus instrumentation: an action-outcome
// counter and gauges tracking the monetary state, lazily registered the way
// the teacher's observability.ModuleMetrics() guards a package-level
// singleton with sync.Once.
type Metrics struct {
	actions *prometheus.CounterVec
	supply  prometheus.Gauge
	fees    prometheus.Gauge
	allowance prometheus.Gauge
	cap     prometheus.Gauge
}

var (
	metricsOnce sync.Once
	metricsReg  *Metrics
)

// BridgeMetrics returns the lazily-initialised metrics registry.
func BridgeMetrics() *Metrics {
	metricsOnce.Do(func() {
		metricsReg = &Metrics{
			actions: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "bridge",
				Subsystem: "contract",
				Name:      "actions_total",
				Help:      "Total bridge execute actions segmented by action and outcome.",
			}, []string{"action", "outcome"}),
			supply: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "bridge",
				Subsystem: "contract",
				Name:      "supply",
				Help:      "Current notional supply held by the bridge.",
			}),
			fees: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "bridge",
				Subsystem: "contract",
				Name:      "fees_accrued",
				Help:      "Accrued protocol fees awaiting withdrawal.",
			}),
			allowance: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "bridge",
				Subsystem: "contract",
				Name:      "reverse_aggregated_allowance",
				Help:      "Remaining reverse aggregated allowance budget.",
			}),
			cap: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "bridge",
				Subsystem: "contract",
				Name:      "cap",
				Help:      "Configured ceiling on supply.",
			}),
		}
		prometheus.MustRegister(
			metricsReg.actions,
			metricsReg.supply,
			metricsReg.fees,
			metricsReg.allowance,
			metricsReg.cap,
		)
	})
	return metricsReg
}

// ObserveAction records the outcome ("ok" or an error Code) of an execute
// action.
func (m *Metrics) ObserveAction(action, outcome string) {
	m.actions.WithLabelValues(action, outcome).Inc()
}

// ObserveState refreshes the monetary gauges from the current State.
func (m *Metrics) ObserveState(s *State) {
	m.supply.Set(bigFloat(s.Supply))
	m.fees.Set(bigFloat(s.FeesAccrued))
	m.allowance.Set(bigFloat(s.ReverseAggregatedAllowance))
	m.cap.Set(bigFloat(s.Cap))
}

func bigFloat(v *big.Int) float64 {
	if v == nil {
		return 0
	}
	f := new(big.Float).SetInt(v)
	result, _ := f.Float64()
	return result
}
