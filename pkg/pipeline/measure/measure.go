package measure

type DefaultMeasure struct {
	Steps map[string]Metric
	order []string
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		Steps: make(map[string]Metric),
	}
}

func (m *DefaultMeasure) AddMetric(operator string) Metric {
	if mt, ok := m.Steps[operator]; ok {
		return mt
	}

	mt := &DefaultMetric{weight: ComplexityWeight(operator)}
	m.Steps[operator] = mt
	m.order = append(m.order, operator)

	return mt
}

func (m *DefaultMeasure) GetMetric(operator string) Metric {
	return m.Steps[operator]
}

func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	return m.Steps
}

func (m *DefaultMeasure) Operators() []string {
	return append([]string(nil), m.order...)
}

var _ Measure = (*DefaultMeasure)(nil)
