package mongopipe_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"pgregory.net/rapid"

	"github.com/askiada/go-aggregation/pkg/pipeline"
	"github.com/askiada/go-aggregation/pkg/pipeline/model"
	"github.com/askiada/go-aggregation/pkg/pipeline/model/modeltest"
	"github.com/askiada/go-aggregation/pkg/pipeline/mongopipe"
)

func TestToMongo(t *testing.T) {
	t.Parallel()

	seq, err := pipeline.Parse(`[{"$match":{"a":1,"b":1.5,"c":[true,null,"x"]}},{"$limit":1099511627776}]`)
	require.NoError(t, err)

	got, err := mongopipe.ToMongo(seq)
	require.NoError(t, err)

	expected := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "a", Value: int32(1)},
			{Key: "b", Value: 1.5},
			{Key: "c", Value: bson.A{true, nil, "x"}},
		}}},
		bson.D{{Key: "$limit", Value: int64(1 << 40)}},
	}
	assert.Equal(t, expected, got)
}

func TestToMongoRejectsNonDocuments(t *testing.T) {
	t.Parallel()

	_, err := mongopipe.ToMongo(model.Sequence{model.Doc(), model.Int(1)})
	require.ErrorIs(t, err, mongopipe.ErrStageNotDocument)
}

func TestFromBSON(t *testing.T) {
	t.Parallel()

	oid, err := primitive.ObjectIDFromHex("5f1d7c3a2b1e4a0012345678")
	require.NoError(t, err)

	stages := []bson.D{
		{{Key: "$match", Value: bson.M{"b": int32(2), "a": "x"}}},
		{{Key: "$match", Value: bson.D{
			{Key: "_id", Value: oid},
			{Key: "at", Value: primitive.NewDateTimeFromTime(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))},
			{Key: "tags", Value: bson.A{"a", int64(3), primitive.Null{}}},
		}}},
	}

	seq, err := mongopipe.FromBSON(stages)
	require.NoError(t, err)
	assert.Equal(t,
		`[{"$match":{"a":"x","b":2}},{"$match":{"_id":"5f1d7c3a2b1e4a0012345678","at":"2024-01-02T03:04:05Z","tags":["a",3,null]}}]`,
		pipeline.Serialize(seq, false))
}

func TestFromBSONUnsupported(t *testing.T) {
	t.Parallel()

	_, err := mongopipe.FromBSON([]bson.D{{{Key: "$match", Value: primitive.Regex{Pattern: "^a"}}}})
	require.ErrorIs(t, err, mongopipe.ErrUnsupportedType)
}

func TestSize(t *testing.T) {
	t.Parallel()

	size, err := mongopipe.Size(model.Sequence{model.Doc(model.F("$limit", model.Int(5)))})
	require.NoError(t, err)
	assert.Equal(t, 17, size)

	_, err = mongopipe.Size(model.Sequence{model.String("$limit")})
	require.ErrorIs(t, err, mongopipe.ErrStageNotDocument)
}

func TestDriverRoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		seq := modeltest.Sequence(6).Draw(t, "seq")

		stages, err := mongopipe.ToMongo(seq)
		if err != nil {
			t.Fatalf("unable to convert: %v", err)
		}

		back, err := mongopipe.FromBSON(stages)
		if err != nil {
			t.Fatalf("unable to convert back: %v", err)
		}

		if !back.Equal(seq) {
			t.Fatalf("got %s, want %s", pipeline.Serialize(back, false), pipeline.Serialize(seq, false))
		}
	})
}
