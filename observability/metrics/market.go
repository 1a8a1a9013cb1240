package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type MarketMetrics struct {
	swapsCreated   *prometheus.CounterVec
	swapsUpdated   prometheus.Counter
	swapsCancelled prometheus.Counter
	swapsFinished  *prometheus.CounterVec
	feeWithdrawals prometheus.Counter
	activeSwaps    prometheus.Gauge
}

var (
	marketOnce     sync.Once
	marketRegistry *MarketMetrics
)

func Market() *MarketMetrics {
	marketOnce.Do(func() {
		marketRegistry = &MarketMetrics{
			swapsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "market_swaps_created_total",
				Help: "Count of swaps created by side.",
			}, []string{"side"}),
			swapsUpdated: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "market_swaps_updated_total",
				Help: "Count of swap price or expiry updates.",
			}),
			swapsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "market_swaps_cancelled_total",
				Help: "Count of swaps cancelled by their creator.",
			}),
			swapsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "market_swaps_finished_total",
				Help: "Count of settled swaps by side.",
			}, []string{"side"}),
			feeWithdrawals: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "market_fee_withdrawals_total",
				Help: "Count of admin fee withdrawals.",
			}),
			activeSwaps: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "market_active_swaps",
				Help: "Number of swaps currently open on the ledger.",
			}),
		}
		prometheus.MustRegister(
			marketRegistry.swapsCreated,
			marketRegistry.swapsUpdated,
			marketRegistry.swapsCancelled,
			marketRegistry.swapsFinished,
			marketRegistry.feeWithdrawals,
			marketRegistry.activeSwaps,
		)
	})
	return marketRegistry
}

func (m *MarketMetrics) ObserveSwapCreated(side string) {
	if m == nil {
		return
	}
	if side == "" {
		side = "unknown"
	}
	m.swapsCreated.WithLabelValues(side).Inc()
}

func (m *MarketMetrics) ObserveSwapUpdated() {
	if m == nil {
		return
	}
	m.swapsUpdated.Inc()
}

func (m *MarketMetrics) ObserveSwapCancelled() {
	if m == nil {
		return
	}
	m.swapsCancelled.Inc()
}

func (m *MarketMetrics) ObserveSwapFinished(side string) {
	if m == nil {
		return
	}
	if side == "" {
		side = "unknown"
	}
	m.swapsFinished.WithLabelValues(side).Inc()
}

func (m *MarketMetrics) ObserveFeeWithdrawal() {
	if m == nil {
		return
	}
	m.feeWithdrawals.Inc()
}

func (m *MarketMetrics) SetActiveSwaps(count float64) {
	if m == nil {
		return
	}
	m.activeSwaps.Set(count)
}
