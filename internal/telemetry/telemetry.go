// Package telemetry exposes the router's Prometheus metrics, grounded on
// the teacher's internal/metrics (promhttp.Handler on a flag-configured
// port) and internal/measure (promauto gauge/counter vectors labeled by
// neighbor). Metrics are purely additive: nothing here touches the wire
// protocol exchanged between neighbors.
package telemetry

import (
	"flag"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ronak4/BGP-Router/pkg/logging"
)

var (
	metricsPort = flag.Int("metrics.port", 5120, "port for the Prometheus metrics server")
	metricsPath = flag.String("metrics.path", "/metrics", "path for the Prometheus metrics server")
)

var (
	RIBEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rib_entries",
		Help: "current number of entries in the forwarding table",
	})

	UpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rib_updates_total",
		Help: "accepted announce messages, by source neighbor",
	}, []string{"neighbor"})

	WithdrawalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rib_withdrawals_total",
		Help: "accepted withdraw messages, by source neighbor",
	}, []string{"neighbor"})

	AggregationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rib_aggregations_total",
		Help: "number of adjacent-pair merges performed since startup",
	})

	DroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rib_dropped_total",
		Help: "frames dropped, by reason",
	}, []string{"reason"})

	BestPathLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rib_best_path_lookups_total",
		Help: "data-plane best-path lookups, by result",
	}, []string{"result"})
)

// Serve starts the metrics HTTP server. It blocks; callers run it in its
// own goroutine.
func Serve() {
	mux := http.NewServeMux()
	mux.Handle(*metricsPath, promhttp.Handler())
	logging.Infof("serving metrics on :%d%s", *metricsPort, *metricsPath)
	if err := http.ListenAndServe(":"+strconv.Itoa(*metricsPort), mux); err != nil {
		logging.Errorf("metrics server stopped: %v", err)
	}
}
