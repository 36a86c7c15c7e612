package rbtree

import "github.com/prometheus/client_golang/prometheus"

// StatsSource is anything that exposes tree counters, a *Tree or an aggregate of trees.
type StatsSource interface {
	Stats() Stats
	Size() int
}

var (
	allocDesc = prometheus.NewDesc(
		"rbtree_nodes_allocated_total",
		"number of nodes allocated by insert",
		nil, nil)

	freeDesc = prometheus.NewDesc(
		"rbtree_nodes_freed_total",
		"number of nodes freed by erase or release",
		nil, nil)

	rotationsDesc = prometheus.NewDesc(
		"rbtree_rotations_total",
		"number of left and right rotations",
		nil, nil)

	fixupDesc = prometheus.NewDesc(
		"rbtree_fixup_iterations_total",
		"number of rebalancing loop iterations",
		[]string{"op"}, nil)

	sizeDesc = prometheus.NewDesc(
		"rbtree_size",
		"number of keys currently stored",
		nil, nil)
)

// Collector exports the counters of a StatsSource as prometheus metrics.
type Collector struct {
	source StatsSource
}

var _ prometheus.Collector = (*Collector)(nil)

func NewCollector(source StatsSource) *Collector {
	return &Collector{source: source}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- allocDesc
	ch <- freeDesc
	ch <- rotationsDesc
	ch <- fixupDesc
	ch <- sizeDesc
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.source.Stats()
	ch <- prometheus.MustNewConstMetric(allocDesc, prometheus.CounterValue, float64(stats.Alloc))
	ch <- prometheus.MustNewConstMetric(freeDesc, prometheus.CounterValue, float64(stats.Free))
	ch <- prometheus.MustNewConstMetric(rotationsDesc, prometheus.CounterValue, float64(stats.Rotations))
	ch <- prometheus.MustNewConstMetric(fixupDesc, prometheus.CounterValue, float64(stats.InsertFixups), "insert")
	ch <- prometheus.MustNewConstMetric(fixupDesc, prometheus.CounterValue, float64(stats.DeleteFixups), "delete")
	ch <- prometheus.MustNewConstMetric(sizeDesc, prometheus.GaugeValue, float64(c.source.Size()))
}
