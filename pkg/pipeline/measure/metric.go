package measure

// weights estimates the relative cost of an operator for an execution engine.
var weights = map[string]int{
	"$match":       1,
	"$project":     2,
	"$group":       3,
	"$lookup":      4,
	"$facet":       5,
	"$graphLookup": 4,
	"$addFields":   2,
	"$sort":        1,
	"$limit":       1,
	"$skip":        1,
}

// DefaultWeight applies to operators without an explicit weight.
const DefaultWeight = 1

// ComplexityWeight returns the weight of operator.
func ComplexityWeight(operator string) int {
	if w, ok := weights[operator]; ok {
		return w
	}

	return DefaultWeight
}

// MaxWeight returns the largest explicit weight.
func MaxWeight() int {
	maxWeight := DefaultWeight
	for _, w := range weights {
		if w > maxWeight {
			maxWeight = w
		}
	}

	return maxWeight
}

type DefaultMetric struct {
	total     int
	totalSize int
	weight    int
}

func (mt *DefaultMetric) AddStage(serializedSize int) {
	mt.total++
	mt.totalSize += serializedSize
}

func (mt *DefaultMetric) Count() int {
	return mt.total
}

func (mt *DefaultMetric) TotalSize() int {
	return mt.totalSize
}

func (mt *DefaultMetric) Weight() int {
	return mt.weight
}

// Complexity is the weight of the operator times its occurrences.
func (mt *DefaultMetric) Complexity() int {
	return mt.weight * mt.total
}

var _ Metric = (*DefaultMetric)(nil)
