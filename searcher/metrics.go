package searcher

import (
	"time"
)

type SearchMetric struct {
	StartTime time.Time
	Duration  time.Duration
	Nodes     int // calls into the recursive search
	Leaves    int // depth exhausted or terminal
	Cutoffs   int
	Book      bool
}

type MetricsCollector interface {
	Start()
	AddNode()
	AddLeaf()
	AddCutoff()
	UsedBook()
	Complete() SearchMetric
}

// Not safe for concurrent use.
type metricsCollector struct {
	startTime time.Time
	nodes     int
	leaves    int
	cutoffs   int
	book      bool
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start() {
	*m = metricsCollector{startTime: time.Now()}
}

func (m *metricsCollector) AddNode() {
	m.nodes++
}

func (m *metricsCollector) AddLeaf() {
	m.leaves++
}

func (m *metricsCollector) AddCutoff() {
	m.cutoffs++
}

func (m *metricsCollector) UsedBook() {
	m.book = true
}

func (m *metricsCollector) Complete() SearchMetric {
	return SearchMetric{
		StartTime: m.startTime,
		Duration:  time.Since(m.startTime),
		Nodes:     m.nodes,
		Leaves:    m.leaves,
		Cutoffs:   m.cutoffs,
		Book:      m.book,
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start()                 {}
func (m *noMetricsCollector) AddNode()               {}
func (m *noMetricsCollector) AddLeaf()               {}
func (m *noMetricsCollector) AddCutoff()             {}
func (m *noMetricsCollector) UsedBook()              {}
func (m *noMetricsCollector) Complete() SearchMetric { return SearchMetric{} }
