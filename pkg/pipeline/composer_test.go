package pipeline_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/askiada/go-aggregation/pkg/pipeline"
	"github.com/askiada/go-aggregation/pkg/pipeline/model"
	"github.com/askiada/go-aggregation/pkg/pipeline/model/modeltest"
)

func fixedComposer(opts ...pipeline.ComposerOption) *pipeline.Composer {
	opts = append([]pipeline.ComposerOption{
		pipeline.ComposerClock(func() time.Time {
			return time.Date(2024, 1, 2, 3, 4, 5, 6e6, time.FixedZone("CET", 3600))
		}),
		pipeline.ComposerIDGenerator(func() string { return "id-1" }),
	}, opts...)

	return pipeline.NewComposer(opts...)
}

func TestComposeNoInput(t *testing.T) {
	t.Parallel()

	err := pipeline.NewComposer().Compose()
	require.ErrorIs(t, err, pipeline.ErrComposition)
	require.ErrorIs(t, err, pipeline.ErrNoPipelines)

	var compErr *pipeline.CompositionError
	require.ErrorAs(t, err, &compErr)
	assert.Equal(t, pipeline.CompositionNoInput, compErr.Kind)
	assert.Equal(t, -1, compErr.Index)
}

func TestComposeConcatenatesInOrder(t *testing.T) {
	t.Parallel()

	a := mustParse(t, `[{"$match":{"a":1}},{"$sort":{"a":1}}]`)
	b := mustParse(t, `[{"$limit":10}]`)

	composer := pipeline.NewComposer()
	require.NoError(t, composer.Compose(a, b))

	assert.Equal(t, 3, composer.StageCount())
	assert.Equal(t, `[{"$match":{"a":1}},{"$sort":{"a":1}},{"$limit":10}]`, composer.JSON(false))

	a[0] = model.Doc(model.F("$skip", model.Int(1)))
	assert.Equal(t, `[{"$match":{"a":1}},{"$sort":{"a":1}},{"$limit":10}]`, composer.JSON(false))

	require.NoError(t, composer.Compose(b))
	assert.Equal(t, 1, composer.StageCount())
}

func TestComposeInvalidInputKeepsState(t *testing.T) {
	t.Parallel()

	valid := mustParse(t, `[{"$limit":1}]`)

	composer := pipeline.NewComposer()
	require.NoError(t, composer.Compose(valid))

	err := composer.Compose(valid, model.Sequence{})
	require.ErrorIs(t, err, pipeline.ErrComposition)
	require.ErrorIs(t, err, pipeline.ErrEmptyPipeline)
	assert.Equal(t, "invalid pipeline at index 1: pipeline cannot be empty", err.Error())

	var compErr *pipeline.CompositionError
	require.ErrorAs(t, err, &compErr)
	assert.Equal(t, pipeline.CompositionInvalidPipeline, compErr.Kind)
	assert.Equal(t, 1, compErr.Index)

	assert.Equal(t, `[{"$limit":1}]`, composer.JSON(false))
}

func TestComposeUsesComposerValidation(t *testing.T) {
	t.Parallel()

	lenient := mustParse(t, `[{"a":1,"b":2}]`)

	require.ErrorIs(t, pipeline.NewComposer().Compose(lenient), pipeline.ErrMultipleOperators)
	require.NoError(t, pipeline.NewComposer(pipeline.ComposerValidation(pipeline.Strict(false))).Compose(lenient))
}

func TestExtend(t *testing.T) {
	t.Parallel()

	base := mustParse(t, `[{"$match":{}}]`)
	ext := mustParse(t, `[{"$project":{"a":1}},{"$limit":2}]`)

	extended := pipeline.NewComposer()
	require.NoError(t, extended.Extend(base, ext))

	composed := pipeline.NewComposer()
	require.NoError(t, composed.Compose(base, ext))

	assert.True(t, extended.Build().Equal(composed.Build()))

	tcs := map[string]struct {
		base, ext model.Sequence
		kind      string
	}{
		"invalid base":      {base: model.Sequence{}, ext: ext, kind: pipeline.CompositionInvalidBase},
		"invalid extension": {base: base, ext: mustParse(t, `[{"foo":1}]`), kind: pipeline.CompositionInvalidExtension},
	}

	for name, tc := range tcs {
		tc := tc

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			composer := pipeline.NewComposer()
			require.NoError(t, composer.Compose(base))

			err := composer.Extend(tc.base, tc.ext)
			require.ErrorIs(t, err, pipeline.ErrComposition)

			var compErr *pipeline.CompositionError
			require.ErrorAs(t, err, &compErr)
			assert.Equal(t, tc.kind, compErr.Kind)
			assert.Equal(t, 1, composer.StageCount())
		})
	}
}

func TestComposerQueries(t *testing.T) {
	t.Parallel()

	composer := pipeline.NewComposer()
	require.NoError(t, composer.Compose(mustParse(t, `[{"$match":{"a":1}},{"$limit":1},{"$match":{"b":2}}]`)))

	stage, err := composer.StageAt(1)
	require.NoError(t, err)
	assert.Equal(t, `{"$limit":1}`, stage.String())

	_, err = composer.StageAt(3)
	require.ErrorIs(t, err, pipeline.ErrIndexOutOfRange)

	_, err = composer.StageAt(-1)
	require.ErrorIs(t, err, pipeline.ErrIndexOutOfRange)

	assert.True(t, composer.HasStageType("$match"))
	assert.False(t, composer.HasStageType("$group"))
	assert.Equal(t, `[{"$match":{"a":1}},{"$match":{"b":2}}]`, pipeline.Serialize(composer.StagesOfType("$match"), false))
	assert.Empty(t, composer.StagesOfType("$group"))

	assert.Equal(t, "Composed Pipeline with 3 stages:\n1. $match\n2. $limit\n3. $match", composer.String())

	composer.Clear()
	assert.Equal(t, 0, composer.StageCount())
	assert.Equal(t, `[]`, composer.JSON(false))
	assert.Equal(t, "Composed Pipeline with 0 stages:\n", composer.String())
}

func TestComposerStringListsFirstKey(t *testing.T) {
	t.Parallel()

	composer := pipeline.NewComposer(pipeline.ComposerValidation(pipeline.Strict(false)))
	require.NoError(t, composer.Compose(mustParse(t, `[{"a":1,"b":2},{"$limit":1}]`)))

	assert.Equal(t, "Composed Pipeline with 2 stages:\n1. a\n2. $limit", composer.String())
	assert.False(t, composer.HasStageType("a"))
	assert.Empty(t, composer.StagesOfType("a"))
}

func TestExportWithMetadata(t *testing.T) {
	t.Parallel()

	composer := fixedComposer()
	require.NoError(t, composer.Compose(mustParse(t, `[{"$limit":1}]`)))

	export := composer.ExportWithMetadata(map[string]any{"owner": "reports", pipeline.MetadataExportID: "custom"})

	assert.Equal(t, 1, export.Metadata[pipeline.MetadataStageCount])
	assert.Equal(t, "2024-01-02T02:04:05.006Z", export.Metadata[pipeline.MetadataCreatedAt])
	assert.Equal(t, "custom", export.Metadata[pipeline.MetadataExportID])
	assert.Equal(t, "reports", export.Metadata["owner"])

	raw, err := export.JSON(false)
	require.NoError(t, err)
	assert.Equal(t, `{"pipeline":[{"$limit":1}],"metadata":{"createdAt":"2024-01-02T02:04:05.006Z","exportId":"custom","owner":"reports","stageCount":1}}`, raw)

	export.Pipeline[0] = model.Doc()
	assert.Equal(t, `[{"$limit":1}]`, composer.JSON(false))
}

func TestExportGeneratesIdentifiers(t *testing.T) {
	t.Parallel()

	composer := pipeline.NewComposer()

	first := composer.ExportWithMetadata(nil)
	second := composer.ExportWithMetadata(nil)

	assert.NotEmpty(t, first.Metadata[pipeline.MetadataExportID])
	assert.NotEqual(t, first.Metadata[pipeline.MetadataExportID], second.Metadata[pipeline.MetadataExportID])
	assert.Equal(t, 0, first.Metadata[pipeline.MetadataStageCount])
}

func TestComposerLogs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	composer := pipeline.NewComposer(pipeline.ComposerLogger(logger))

	require.NoError(t, composer.Compose(mustParse(t, `[{"$limit":1}]`)))
	require.Error(t, composer.Compose(model.Sequence{}))

	assert.Contains(t, buf.String(), "pipelines composed")
	assert.Contains(t, buf.String(), "compose rejected")
}

func TestComposeProperties(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		seqs := rapid.SliceOfN(modeltest.Sequence(5), 1, 4).Draw(t, "seqs")

		composer := pipeline.NewComposer()
		if err := composer.Compose(seqs...); err != nil {
			t.Fatalf("compose failed: %v", err)
		}

		want := model.Sequence{}
		for _, seq := range seqs {
			want = append(want, seq...)
		}

		if !composer.Build().Equal(want) {
			t.Fatalf("got %s, want %s", composer.JSON(false), pipeline.Serialize(want, false))
		}
	})
}
