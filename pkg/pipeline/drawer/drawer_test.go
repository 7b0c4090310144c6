package drawer_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-aggregation/pkg/pipeline/drawer"
	"github.com/askiada/go-aggregation/pkg/pipeline/measure"
	"github.com/askiada/go-aggregation/pkg/pipeline/model"
)

type recordingDrawer struct {
	stages  []string
	links   []string
	measure measure.Measure
}

func (r *recordingDrawer) AddStage(name, _ string) error {
	r.stages = append(r.stages, name)

	return nil
}

func (r *recordingDrawer) AddLink(parent, child string) error {
	r.links = append(r.links, parent+" -> "+child)

	return nil
}

func (r *recordingDrawer) AddMeasure(msr measure.Measure) error {
	r.measure = msr

	return nil
}

func (r *recordingDrawer) Draw(io.Writer) error {
	return nil
}

func testSequence() model.Sequence {
	return model.Sequence{
		model.Doc(model.F("$match", model.Doc())),
		model.Doc(model.F("$group", model.Doc())),
		model.Doc(model.F("$match", model.Doc())),
	}
}

func TestAddSequence(t *testing.T) {
	t.Parallel()

	drw := &recordingDrawer{}

	err := drawer.AddSequence(drw, testSequence(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"1. $match", "2. $group", "3. $match"}, drw.stages)
	assert.Equal(t, []string{"1. $match -> 2. $group", "2. $group -> 3. $match"}, drw.links)
	assert.Nil(t, drw.measure)
}

func TestDOTDrawer(t *testing.T) {
	t.Parallel()

	seq := testSequence()
	drw := drawer.NewDOTDrawer()

	err := drawer.AddSequence(drw, seq, measure.FromSequence(seq))
	require.NoError(t, err)

	var buf bytes.Buffer

	err = drw.Draw(&buf)
	require.NoError(t, err)

	out := strings.ToLower(buf.String())
	assert.Contains(t, out, "strict digraph")
	assert.Contains(t, out, `"1. $match" -> "2. $group"`)
	assert.Contains(t, out, `"2. $group" -> "3. $match"`)
	assert.Contains(t, out, `color="#0000f0"`)
	assert.Contains(t, out, `color="#780078"`)
	assert.Contains(t, out, "weight 3, ~13 chars")
	assert.Contains(t, out, `shape="box"`)
}

func TestDOTDrawerColourScale(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		operator string
		expected string
	}{
		"lightest only": {operator: "$match", expected: `color="#0000f0"`},
		"unknown only":  {operator: "$unwind", expected: `color="#0000f0"`},
		"middle only":   {operator: "$group", expected: `color="#780078"`},
		"heaviest only": {operator: "$facet", expected: `color="#f00000"`},
	}

	for name, tc := range tcs {
		tc := tc

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			seq := model.Sequence{
				model.Doc(model.F(tc.operator, model.Doc())),
				model.Doc(model.F(tc.operator, model.Doc())),
			}

			drw := drawer.NewDOTDrawer()
			require.NoError(t, drawer.AddSequence(drw, seq, measure.FromSequence(seq)))

			var buf bytes.Buffer

			require.NoError(t, drw.Draw(&buf))
			assert.Contains(t, strings.ToLower(buf.String()), tc.expected)
		})
	}
}

func TestDOTDrawerGraphAttribute(t *testing.T) {
	t.Parallel()

	drw := drawer.NewDOTDrawer(drawer.GraphAttribute("rankdir", "LR"))
	require.NoError(t, drw.AddStage("1. $match", "$match"))

	var buf bytes.Buffer

	require.NoError(t, drw.Draw(&buf))
	assert.Contains(t, buf.String(), `rankdir="LR";`)

	buf.Reset()
	require.NoError(t, drawer.NewDOTDrawer().Draw(&buf))
	assert.NotContains(t, buf.String(), "rankdir")
}

func TestAddSequenceNamesMultipleKeyStageByFirstKey(t *testing.T) {
	t.Parallel()

	drw := &recordingDrawer{}
	seq := model.Sequence{model.Doc(model.F("a", model.Int(1)), model.F("b", model.Int(2)))}

	require.NoError(t, drawer.AddSequence(drw, seq, nil))
	assert.Equal(t, []string{"1. a"}, drw.stages)
}

func TestDOTDrawerRejectsDuplicates(t *testing.T) {
	t.Parallel()

	drw := drawer.NewDOTDrawer()

	require.NoError(t, drw.AddStage("1. $match", "$match"))
	require.Error(t, drw.AddStage("1. $match", "$match"))
	require.Error(t, drw.AddLink("1. $match", "2. $limit"))
}

func TestStageName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1. $match", drawer.StageName(0, "$match"))
	assert.Equal(t, "10. ", drawer.StageName(9, ""))
}
