// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 認証失敗の理由ラベル
const (
	AuthFailureMissingToken = "missing_token"
	AuthFailureUnknownToken = "unknown_token"
	AuthFailureLookupError  = "lookup_error"
)

// MetricsCollector はメトリクス収集のインターフェース。
// HTTPミドルウェアと認証ミドルウェアから利用する。
type MetricsCollector interface {
	RecordHTTPRequest(method, route string, statusCode int, duration time.Duration)
	RecordAuthFailure(reason string)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
	authFailures *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contactbook_http_requests_total",
			Help: "ルート・メソッド・ステータスコード別のHTTPリクエスト数",
		}, []string{"method", "route", "status_code"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "contactbook_http_request_duration_seconds",
			Help:    "HTTPリクエストの処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		authFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contactbook_auth_failures_total",
			Help: "理由別のトークン認証失敗数",
		}, []string{"reason"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.authFailures,
	)

	return c
}

// RecordHTTPRequest はHTTPリクエスト1件の結果と処理時間を記録する。
// routeにはパスではなくルートパターンを渡し、ラベルの種類を抑える。
func (c *Collector) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordAuthFailure は認証失敗を記録する。
func (c *Collector) RecordAuthFailure(reason string) {
	c.authFailures.WithLabelValues(reason).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// NopCollector は何も記録しないMetricsCollector。メトリクス無効時に使う。
type NopCollector struct{}

// RecordHTTPRequest は何もしない。
func (NopCollector) RecordHTTPRequest(string, string, int, time.Duration) {}

// RecordAuthFailure は何もしない。
func (NopCollector) RecordAuthFailure(string) {}

var (
	_ MetricsCollector = (*Collector)(nil)
	_ MetricsCollector = NopCollector{}
)
