package drawer

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/askiada/go-aggregation/pkg/pipeline/measure"
	"github.com/askiada/go-aggregation/pkg/pipeline/model"
)

// StageName returns the vertex name of the stage at index, e.g. "1. $match".
func StageName(index int, operator string) string {
	return fmt.Sprintf("%d. %s", index+1, operator)
}

// AddSequence adds one vertex per stage of seq, linked in execution order,
// then applies msr when it is not nil.
func AddSequence(drw Drawer, seq model.Sequence, msr measure.Measure) error {
	previous := ""

	for i, stage := range seq {
		operator, _ := stage.FirstKey()
		name := StageName(i, operator)

		err := drw.AddStage(name, operator)
		if err != nil {
			return errors.Wrapf(err, "unable to add stage %d", i)
		}

		if previous != "" {
			err = drw.AddLink(previous, name)
			if err != nil {
				return errors.Wrapf(err, "unable to link stage %d", i)
			}
		}

		previous = name
	}

	if msr == nil {
		return nil
	}

	err := drw.AddMeasure(msr)
	if err != nil {
		return errors.Wrap(err, "unable to add measure")
	}

	return nil
}
