package measure

import (
	"unicode/utf16"

	"github.com/askiada/go-aggregation/pkg/pipeline/model"
)

// Collect adds every stage of seq to msr under its first key, sized by the
// length in UTF-16 code units of its compact JSON form. Stages that are not
// documents, or are empty documents, are measured under the empty name.
func Collect(msr Measure, seq model.Sequence) {
	for _, stage := range seq {
		operator, _ := stage.FirstKey()
		msr.AddMetric(operator).AddStage(SerializedSize(stage))
	}
}

// SerializedSize returns the length of the compact JSON form of stage in
// UTF-16 code units, so characters outside the Basic Multilingual Plane count twice.
func SerializedSize(stage model.Value) int {
	return len(utf16.Encode([]rune(stage.String())))
}

// FromSequence measures seq with a new DefaultMeasure.
func FromSequence(seq model.Sequence) *DefaultMeasure {
	msr := NewDefaultMeasure()
	Collect(msr, seq)

	return msr
}
