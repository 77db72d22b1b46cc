// Package metrics exposes prometheus counters for cell resolutions.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"galvani/internal/redox"
	"galvani/pkg/models"
)

// Collector owns its registry so tests and multiple servers in one process
// never collide on registration.
type Collector struct {
	registry *prometheus.Registry

	Resolutions  *prometheus.CounterVec
	Rejections   *prometheus.CounterVec
	CellVoltage  prometheus.Histogram
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	LiveClients  *prometheus.GaugeVec
}

func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		Resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cell_resolutions_total",
			Help:      "Cells resolved, by catalog, mode and front end.",
		}, []string{"catalog", "mode", "source"}),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cell_rejections_total",
			Help:      "Selections rejected, by error kind and front end.",
		}, []string{"kind", "source"}),
		CellVoltage: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cell_potential_volts",
			Help:      "Standard potential of resolved cells.",
			Buckets:   prometheus.LinearBuckets(0, 0.5, 10),
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		LiveClients: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_clients",
			Help:      "Connected live-board clients by transport.",
		}, []string{"transport"}),
	}

	c.registry.MustRegister(
		c.Resolutions,
		c.Rejections,
		c.CellVoltage,
		c.HTTPRequests,
		c.HTTPDuration,
		c.LiveClients,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return c
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Observe records the outcome of one simulation request. A nil collector is
// a no-op so handlers can run without metrics.
func (c *Collector) Observe(source, catalogName string, res models.Resolution, err error) {
	if c == nil {
		return
	}
	if err != nil {
		kind := string(redox.KindOf(err))
		if kind == "" {
			kind = "internal"
		}
		c.Rejections.WithLabelValues(kind, source).Inc()
		return
	}
	c.Resolutions.WithLabelValues(catalogName, string(res.Mode), source).Inc()
	if res.CellPotential != nil {
		c.CellVoltage.Observe(*res.CellPotential)
	}
}

// Handler serves the registry in the prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Gin records request counts and latency by matched route.
func (c *Collector) Gin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := ctx.Request.Method
		c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
