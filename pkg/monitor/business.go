package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics 定义业务监控指标
type BusinessMetrics struct {
	DonationsTotal       *prometheus.CounterVec
	DonationAmountTotal  prometheus.Counter
	RefreshTotal         *prometheus.CounterVec
	ProviderCallDuration *prometheus.HistogramVec
	ConnectedSessions    prometheus.Gauge
	ActiveSessions       prometheus.Gauge
}

// Business 包加载时注册，服务层可直接使用
var Business = &BusinessMetrics{
	DonationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tipjar_donations_total",
		Help: "Donation attempts by result",
	}, []string{"result"}),
	DonationAmountTotal: promauto.NewCounter(prometheus.CounterOpts{
		Name: "tipjar_donation_amount_total",
		Help: "Sum of confirmed donation amounts (raw uint256 units)",
	}),
	RefreshTotal: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tipjar_refresh_total",
		Help: "viewTipsOf reads by result",
	}, []string{"result"}),
	ProviderCallDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tipjar_provider_call_duration_seconds",
		Help:    "Duration of calls to the chain provider",
		Buckets: []float64{0.05, 0.1, 0.3, 1, 3, 10, 30, 60},
	}, []string{"method"}),
	ConnectedSessions: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tipjar_connected_sessions",
		Help: "Sessions with a connected wallet",
	}),
	ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tipjar_active_sessions",
		Help: "Live browser sessions",
	}),
}

// 结果标签
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultError    = "error"
)
