package query

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type doc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Brand     string             `bson:"brand"`
	Status    string             `bson:"status"`
	Price     struct {
		Monthly float64 `bson:"monthly"`
	} `bson:"price"`
	CreatedAt time.Time `bson:"createdAt"`
}

func newDoc(brand, status string, monthly float64, age time.Duration) doc {
	d := doc{ID: primitive.NewObjectID(), Brand: brand, Status: status, CreatedAt: time.Now().Add(-age)}
	d.Price.Monthly = monthly
	return d
}

func ptr(f float64) *float64 { return &f }

func TestEmptyFilterCompilesToEmptyDocument(t *testing.T) {
	assert.Equal(t, bson.D{}, Filter{}.BSON())
	assert.True(t, Filter{}.Empty())
}

func TestContainsQuotesRegexMetacharacters(t *testing.T) {
	got := Contains("brand", "1.5 (Ton)").BSON()
	want := bson.D{{Key: "brand", Value: bson.D{
		{Key: "$regex", Value: `1\.5 \(Ton\)`},
		{Key: "$options", Value: "i"},
	}}}
	assert.Equal(t, want, got)
}

func TestRangeCompilesOnlySuppliedBounds(t *testing.T) {
	got := Range("price.monthly", ptr(1000), nil).BSON()
	assert.Equal(t, bson.D{{Key: "price.monthly", Value: bson.D{{Key: "$gte", Value: 1000.0}}}}, got)

	got = Range("price.monthly", nil, ptr(2000)).BSON()
	assert.Equal(t, bson.D{{Key: "price.monthly", Value: bson.D{{Key: "$lte", Value: 2000.0}}}}, got)
}

func TestAndWrapsMultipleConditions(t *testing.T) {
	f := And(Eq("type", "Split"), Contains("location", "pune"))
	got := f.BSON()
	require.Len(t, got, 1)
	assert.Equal(t, "$and", got[0].Key)
	assert.Len(t, got[0].Value, 2)
}

func TestInWithNoValuesCompilesToEmptyArray(t *testing.T) {
	got := In("_id").BSON()
	assert.Equal(t, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: bson.A{}}}}}, got)
}

func TestWithDoesNotMutateReceiver(t *testing.T) {
	base := And(Eq("status", "Available"))
	extended := base.With(Eq("brand", "LG"))
	assert.Len(t, base.Conds(), 1)
	assert.Len(t, extended.Conds(), 2)
}

func TestMatchSemantics(t *testing.T) {
	d := newDoc("Voltas", "Available", 1500, 0)

	cases := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty matches all", Filter{}, true},
		{"eq", And(Eq("status", "Available")), true},
		{"eq miss", And(Eq("status", "Rented Out")), false},
		{"contains ignores case", And(Contains("brand", "volt")), true},
		{"contains literal dot", And(Contains("brand", "v.ltas")), false},
		{"range min only", And(Range("price.monthly", ptr(1000), nil)), true},
		{"range above max", And(Range("price.monthly", nil, ptr(1000))), false},
		{"range inclusive", And(Range("price.monthly", ptr(1500), ptr(1500))), true},
		{"any of", And(AnyOf(Eq("brand", "LG"), Contains("brand", "TAS"))), true},
		{"any of miss", And(AnyOf(Eq("brand", "LG"), Eq("brand", "Daikin"))), false},
		{"not in", And(NotIn("_id", primitive.NewObjectID())), true},
		{"not in self", And(NotIn("_id", d.ID)), false},
		{"in", And(In("_id", d.ID)), true},
		{"and", And(Eq("status", "Available"), Eq("brand", "LG")), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Match(tc.filter, d)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestApplyOrdersNewestFirstAndWindows(t *testing.T) {
	docs := []doc{
		newDoc("A", "Available", 100, 3*time.Hour),
		newDoc("B", "Available", 200, 1*time.Hour),
		newDoc("C", "Rented Out", 300, 2*time.Hour),
		newDoc("D", "Available", 400, 0),
	}

	all, err := Apply(Query{Filter: And(Eq("status", "Available")), Sort: NewestFirst}, docs)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"D", "B", "A"}, []string{all[0].Brand, all[1].Brand, all[2].Brand})

	page, err := Apply(Query{Sort: NewestFirst, Skip: 1, Limit: 2}, docs)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "B", page[0].Brand)
	assert.Equal(t, "C", page[1].Brand)

	past, err := Apply(Query{Skip: 10}, docs)
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestPageSkipSaturates(t *testing.T) {
	assert.EqualValues(t, 0, PageSkip(1, 10))
	assert.EqualValues(t, 0, PageSkip(-4, 10))
	assert.EqualValues(t, 0, PageSkip(3, 0))
	assert.EqualValues(t, 20, PageSkip(3, 10))
	assert.EqualValues(t, int64(math.MaxInt64), PageSkip(4611686018427387905, 2))
	assert.EqualValues(t, int64(math.MaxInt64), PageSkip(math.MaxInt64, math.MaxInt64))
}

func TestApplyWithHugeWindowIsEmpty(t *testing.T) {
	docs := []doc{newDoc("A", "Available", 100, 0), newDoc("B", "Available", 200, time.Hour)}

	got, err := Apply(Query{Skip: math.MaxInt64, Limit: 2}, docs)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Apply(Query{Skip: 1, Limit: math.MaxInt64}, docs)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestFindOptionsOmitsZeroWindow(t *testing.T) {
	opts := Query{Sort: NewestFirst}.FindOptions()
	assert.Nil(t, opts.Skip)
	assert.Nil(t, opts.Limit)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}, opts.Sort)

	opts = Query{Skip: 20, Limit: 10}.FindOptions()
	require.NotNil(t, opts.Skip)
	require.NotNil(t, opts.Limit)
	assert.EqualValues(t, 20, *opts.Skip)
	assert.EqualValues(t, 10, *opts.Limit)
}
