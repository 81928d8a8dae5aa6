package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/benchplot/internal/ir"
	"github.com/roach88/benchplot/internal/testutil"
)

func sampleInput(feeSimple float64) RunInput {
	records := []ir.Record{
		{Key: ir.Key{MeasurementType: "eval", Implementation: "fee", Category: "simple"}, Value: feeSimple, Source: "cmp_eval_fee_simple"},
		{Key: ir.Key{MeasurementType: "eval", Implementation: "meval", Category: "var&fn"}, Value: 2500, Source: "cmp_eval_meval_var&fn"},
	}
	g := ir.NewGrid("eval", []string{"simple", "var&fn"}, []string{"fee", "meval"})
	for _, r := range records {
		g.Set(r.Category, r.Implementation, r.Value)
	}
	return RunInput{
		Root:      "target/criterion",
		Marker:    "cmp",
		Statistic: "median.point_estimate",
		Records:   records,
		Grids:     []*ir.Grid{g},
	}
}

func TestSaveRun_AssignsIDAndSeq(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	s.SetIDGenerator(testutil.NewFixedIDs("run-a", "run-b"))

	first, err := s.SaveRun(ctx, sampleInput(123))
	require.NoError(t, err)
	second, err := s.SaveRun(ctx, sampleInput(150))
	require.NoError(t, err)

	assert.Equal(t, "run-a", first.ID)
	assert.Equal(t, int64(1), first.Seq)
	assert.Equal(t, "run-b", second.ID)
	assert.Equal(t, int64(2), second.Seq)
	assert.Equal(t, 2, first.RecordCount)
	assert.NotEqual(t, first.Digest, second.Digest)
}

func TestSaveRun_DigestMatchesGrids(t *testing.T) {
	s := createTestStore(t)
	in := sampleInput(123)

	summary, err := s.SaveRun(context.Background(), in)
	require.NoError(t, err)

	want, err := ir.RunDigest(in.Grids)
	require.NoError(t, err)
	assert.Equal(t, want, summary.Digest)
	assert.Len(t, summary.ID, 36, "UUIDv7 IDs are hyphenated")
}

func TestSaveRun_DuplicateIDRollsBack(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	s.SetIDGenerator(testutil.NewFixedIDs("same", "same"))

	_, err := s.SaveRun(ctx, sampleInput(1))
	require.NoError(t, err)
	_, err = s.SaveRun(ctx, sampleInput(2))
	require.Error(t, err)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestListRuns_Empty(t *testing.T) {
	runs, err := createTestStore(t).ListRuns(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestListRuns_OrderedBySeq(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	s.SetIDGenerator(testutil.NewFixedIDs("zzz", "aaa", "mmm"))
	for i := 0; i < 3; i++ {
		_, err := s.SaveRun(ctx, sampleInput(float64(i+1)))
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []string{"zzz", "aaa", "mmm"}, []string{runs[0].ID, runs[1].ID, runs[2].ID})
}

func TestResolveRun(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	s.SetIDGenerator(testutil.NewFixedIDs("run-a", "run-b"))
	_, err := s.SaveRun(ctx, sampleInput(1))
	require.NoError(t, err)
	_, err = s.SaveRun(ctx, sampleInput(2))
	require.NoError(t, err)

	tests := []struct {
		ref  string
		want string
	}{
		{"run-a", "run-a"},
		{"1", "run-a"},
		{"2", "run-b"},
		{"latest", "run-b"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			id, err := s.ResolveRun(ctx, tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}

	for _, ref := range []string{"3", "run-c"} {
		_, err := s.ResolveRun(ctx, ref)
		assert.True(t, errors.Is(err, ErrRunNotFound), ref)
	}
}

func TestResolveRun_LatestOnEmptyHistory(t *testing.T) {
	_, err := createTestStore(t).ResolveRun(context.Background(), "latest")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestLoadRun_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	s.SetIDGenerator(testutil.NewFixedIDs("run-a"))
	in := sampleInput(123)

	_, err := s.SaveRun(ctx, in)
	require.NoError(t, err)

	run, err := s.LoadRun(ctx, "run-a")
	require.NoError(t, err)

	assert.Equal(t, "target/criterion", run.Root)
	assert.Equal(t, "cmp", run.Marker)
	assert.Equal(t, in.Records, run.Records)

	require.Len(t, run.Grids, 1)
	v, ok := run.Grids[0].Cell("simple", "fee")
	require.True(t, ok)
	assert.Equal(t, 123.0, v)
	_, ok = run.Grids[0].Cell("var&fn", "fee")
	assert.False(t, ok)

	want, err := ir.GridDigest(in.Grids[0])
	require.NoError(t, err)
	got, err := ir.GridDigest(run.Grids[0])
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadRun_NotFound(t *testing.T) {
	_, err := createTestStore(t).LoadRun(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestUnmarshalGrid_RejectsShapeMismatch(t *testing.T) {
	_, err := unmarshalGrid(`{"categories":["simple"],"implementations":["fee"],"measurement_type":"eval","values":[[1,2]]}`)
	require.Error(t, err)

	_, err = unmarshalGrid(`{"categories":[],"implementations":["fee"],"measurement_type":"eval","values":[[1]]}`)
	require.Error(t, err)
}

func TestUUIDv7Generator(t *testing.T) {
	g := UUIDv7Generator{}
	a, b := g.Generate(), g.Generate()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
