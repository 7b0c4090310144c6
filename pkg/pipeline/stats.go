package pipeline

import (
	"fmt"
	"strings"

	"github.com/askiada/go-aggregation/pkg/pipeline/measure"
	"github.com/askiada/go-aggregation/pkg/pipeline/model"
)

// Stats summarises a sequence.
type Stats struct {
	// StageTypes maps the first key of each stage to its number of
	// occurrences. Stages that are not documents, or are empty, count under "".
	StageTypes map[string]int
	StageCount int
	// TotalSize is the sum of the compact JSON length of every stage, in UTF-16 code units.
	TotalSize int
	// EstimatedComplexity is the sum of the operator weights of every stage.
	EstimatedComplexity int
}

// Statistics computes the stage histogram, size and complexity of seq.
func Statistics(seq model.Sequence) Stats {
	return statsFromMeasure(len(seq), measure.FromSequence(seq))
}

func statsFromMeasure(stageCount int, msr measure.Measure) Stats {
	stats := Stats{
		StageCount: stageCount,
		StageTypes: make(map[string]int),
	}

	for operator, mt := range msr.AllMetrics() {
		stats.StageTypes[operator] = mt.Count()
		stats.TotalSize += mt.TotalSize()
		stats.EstimatedComplexity += mt.Complexity()
	}

	return stats
}

// Describe returns a multi-line report of the statistics and stages of seq.
func Describe(seq model.Sequence) string {
	msr := measure.FromSequence(seq)
	stats := statsFromMeasure(len(seq), msr)

	types := make([]string, 0, len(stats.StageTypes))
	for _, operator := range msr.Operators() {
		types = append(types, fmt.Sprintf("%s(%d)", operator, stats.StageTypes[operator]))
	}

	var b strings.Builder

	b.WriteString("Pipeline Description:\n")
	fmt.Fprintf(&b, "- Total Stages: %d\n", stats.StageCount)
	fmt.Fprintf(&b, "- Stage Types: %s\n", strings.Join(types, ", "))
	fmt.Fprintf(&b, "- Estimated Complexity: %d\n", stats.EstimatedComplexity)
	fmt.Fprintf(&b, "- Total Size: %d characters\n", stats.TotalSize)
	b.WriteString("\nStages:\n")
	b.WriteString(listStages(seq))

	return b.String()
}

// listStages renders "1. $match" lines, one per stage.
func listStages(seq model.Sequence) string {
	lines := make([]string, len(seq))
	for i, operator := range seq.Operators() {
		lines[i] = fmt.Sprintf("%d. %s", i+1, operator)
	}

	return strings.Join(lines, "\n")
}
