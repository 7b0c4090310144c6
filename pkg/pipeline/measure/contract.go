package measure

// Measure collects one Metric per operator.
type Measure interface {
	// AddMetric returns the metric of operator, creating it on first use.
	AddMetric(operator string) Metric
	GetMetric(operator string) Metric
	AllMetrics() map[string]Metric
	// Operators returns the measured operators in first-seen order.
	Operators() []string
}

// Metric accumulates the stages seen for one operator.
type Metric interface {
	AddStage(serializedSize int)
	Count() int
	TotalSize() int
	Weight() int
	Complexity() int
}
