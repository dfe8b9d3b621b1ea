// Package metrics exports frame loop and HTTP counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chenyukang/fiber-world/frame"
	"github.com/chenyukang/fiber-world/route"
)

const namespace = "fiberworld"

// Metrics holds every collector on a private registry. It implements
// frame.Observer.
type Metrics struct {
	reg *prometheus.Registry

	frameSeconds prometheus.Histogram
	routes       prometheus.Gauge
	hotEdges     prometheus.Gauge
	pulses       prometheus.Gauge
	dpr          prometheus.Gauge
	reduced      prometheus.Gauge
	spawned      prometheus.Counter
	grown        prometheus.Counter
	searches     *prometheus.CounterVec
	nodes        prometheus.Gauge
	edges        prometheus.Gauge
	rebuilds     *prometheus.CounterVec
	clicks       *prometheus.CounterVec
}

var _ frame.Observer = (*Metrics)(nil)

// New registers the collectors. withRuntime adds the Go and process collectors.
func New(withRuntime bool) *Metrics {
	reg := prometheus.NewRegistry()
	if withRuntime {
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		frameSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "frame",
			Name:      "duration_seconds",
			Help:      "Time spent rendering one frame",
			Buckets:   []float64{0.001, 0.0025, 0.005, 0.01, 0.016, 0.022, 0.033, 0.05, 0.1},
		}),
		routes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "frame", Name: "routes",
			Help: "Active payment routes",
		}),
		hotEdges: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "frame", Name: "hot_edges",
			Help: "Channels with heat above the floor",
		}),
		pulses: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "frame", Name: "pulses",
			Help: "Live arrival pulses",
		}),
		dpr: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "frame", Name: "device_pixel_ratio",
			Help: "Effective render scale",
		}),
		reduced: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "frame", Name: "reduced_quality",
			Help: "1 while the quality governor is in reduced mode",
		}),
		spawned: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "frame", Name: "random_spawns_total",
			Help: "Routes spawned by the per-frame spawn chance",
		}),
		grown: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "frame", Name: "churn_edges_total",
			Help: "Channels added by edge churn",
		}),
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "route", Name: "searches_total",
			Help: "Route path searches by outcome",
		}, []string{"outcome"}),
		nodes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "graph", Name: "nodes",
			Help: "Nodes in the current layout",
		}),
		edges: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "graph", Name: "edges",
			Help: "Channels in the current layout at build time",
		}),
		rebuilds: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "graph", Name: "rebuilds_total",
			Help: "Layout rebuilds by reason",
		}, []string{"reason"}),
		clicks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "clicks_total",
			Help: "Click requests by outcome",
		}, []string{"outcome"}),
	}
}

// ObserveFrame implements frame.Observer.
func (m *Metrics) ObserveFrame(fs frame.FrameStats) {
	m.frameSeconds.Observe(fs.Elapsed.Seconds())
	m.routes.Set(float64(fs.Routes))
	m.hotEdges.Set(float64(fs.Hot))
	m.pulses.Set(float64(fs.Pulses))
	m.dpr.Set(fs.DPR)
	if fs.Quality == frame.Reduced {
		m.reduced.Set(1)
	} else {
		m.reduced.Set(0)
	}
	if fs.Spawned {
		m.spawned.Inc()
	}
	if fs.Grew {
		m.grown.Inc()
	}
	for _, o := range route.Outcomes {
		if n := fs.Searches.Get(o); n > 0 {
			m.searches.WithLabelValues(o.String()).Add(float64(n))
		}
	}
}

// ObserveRebuild implements frame.Observer.
func (m *Metrics) ObserveRebuild(reason string, nodes, edges int) {
	m.rebuilds.WithLabelValues(reason).Inc()
	m.nodes.Set(float64(nodes))
	m.edges.Set(float64(edges))
}

// ObserveClick counts a click request; outcome is "ok" or "limited".
func (m *Metrics) ObserveClick(outcome string) {
	m.clicks.WithLabelValues(outcome).Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}
