package drawer

import (
	"io"

	"github.com/askiada/go-aggregation/pkg/pipeline/measure"
)

// Drawer is an interface that defines the methods for drawing a pipeline.
type Drawer interface {
	// AddStage adds a stage vertex running operator.
	AddStage(name, operator string) error
	// AddLink adds a link between two consecutive stages.
	AddLink(parentStageName, childStageName string) error
	// AddMeasure colours and labels stages from the operator metrics.
	AddMeasure(msr measure.Measure) error
	// Draw writes the pipeline graph.
	Draw(w io.Writer) error
}
