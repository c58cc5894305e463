package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "shadowgraph"

// BuildMetrics records the outcome of shadow graph builds.
type BuildMetrics struct {
	buildDuration    prometheus.Histogram
	builds           *prometheus.CounterVec
	vertices         *prometheus.GaugeVec
	edges            *prometheus.GaugeVec
	significantNodes prometheus.Gauge
	warnings         *prometheus.CounterVec
}

func NewBuildMetrics(reg prometheus.Registerer) *BuildMetrics {
	m := &BuildMetrics{
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Duration of shadow graph builds.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 15),
		}),
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "builds_total",
			Help:      "Number of shadow graph builds by result.",
		}, []string{"result"}),
		vertices: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_vertices",
			Help:      "Vertices of the last built graph.",
		}, []string{"kind"}),
		edges: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Edges of the last built graph.",
		}, []string{"kind"}),
		significantNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "significant_nodes",
			Help:      "Significant osm nodes of the last built graph.",
		}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "warnings_total",
			Help:      "Non fatal warnings by code.",
		}, []string{"code"}),
	}
	reg.MustRegister(m.buildDuration, m.builds, m.vertices, m.edges, m.significantNodes, m.warnings)
	return m
}

type GraphCounts struct {
	Vertices         int
	HelperVertices   int
	Edges            int
	HelperEdges      int
	SignificantNodes int
}

func (m *BuildMetrics) ObserveBuild(counts GraphCounts, took time.Duration) {
	m.buildDuration.Observe(took.Seconds())
	m.builds.WithLabelValues("ok").Inc()
	m.vertices.WithLabelValues("osm").Set(float64(counts.Vertices - counts.HelperVertices))
	m.vertices.WithLabelValues("helper").Set(float64(counts.HelperVertices))
	m.edges.WithLabelValues("real").Set(float64(counts.Edges - counts.HelperEdges))
	m.edges.WithLabelValues("helper").Set(float64(counts.HelperEdges))
	m.significantNodes.Set(float64(counts.SignificantNodes))
}

func (m *BuildMetrics) ObserveFailure(took time.Duration) {
	m.buildDuration.Observe(took.Seconds())
	m.builds.WithLabelValues("structural_error").Inc()
}

func (m *BuildMetrics) ObserveWarning(code string) {
	m.warnings.WithLabelValues(code).Inc()
}
