package pipeline

import "github.com/askiada/go-aggregation/pkg/pipeline/model"

// Comparison is the result of Compare.
type Comparison struct {
	StageTypeDiffs   StageTypeDiff
	StageCountDiff   StageCountDiff
	CommonStageCount int
	// AreEqual is set when both sequences serialize identically.
	AreEqual bool
}

// StageCountDiff holds the stage counts of both compared sequences.
type StageCountDiff struct {
	A, B int
}

// StageTypeDiff holds the operator histograms of both compared sequences.
type StageTypeDiff struct {
	A, B map[string]int
}

// Compare compares a and b structurally. CommonStageCount is the length of the
// shorter sequence, not a sequence diff.
func Compare(a, b model.Sequence) Comparison {
	statsA := Statistics(a)
	statsB := Statistics(b)

	return Comparison{
		AreEqual:         Serialize(a, false) == Serialize(b, false),
		StageCountDiff:   StageCountDiff{A: statsA.StageCount, B: statsB.StageCount},
		StageTypeDiffs:   StageTypeDiff{A: statsA.StageTypes, B: statsB.StageTypes},
		CommonStageCount: min(statsA.StageCount, statsB.StageCount),
	}
}
