package pipeline

import (
	"io"

	"github.com/pkg/errors"

	"github.com/askiada/go-aggregation/pkg/pipeline/drawer"
	"github.com/askiada/go-aggregation/pkg/pipeline/measure"
	"github.com/askiada/go-aggregation/pkg/pipeline/model"
)

// Draw writes seq to w as a Graphviz DOT graph laid out left to right, one
// vertex per stage coloured by operator weight.
func Draw(seq model.Sequence, w io.Writer) error {
	drw := drawer.NewDOTDrawer(drawer.GraphAttribute("rankdir", "LR"))

	err := drawer.AddSequence(drw, seq, measure.FromSequence(seq))
	if err != nil {
		return errors.Wrap(err, "unable to add pipeline to drawer")
	}

	err = drw.Draw(w)
	if err != nil {
		return errors.Wrap(err, "unable to draw pipeline")
	}

	return nil
}
