package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/benchplot/internal/ir"
)

func TestCompare(t *testing.T) {
	base := []ir.Record{
		ir.NewRecord("eval", "fee", "simple", 100),
		ir.NewRecord("eval", "fee", "var", 100),
		ir.NewRecord("eval", "meval", "simple", 100),
		ir.NewRecord("parse", "fee", "simple", 200),
		ir.NewRecord("parse", "meval", "complex", 50),
	}
	head := []ir.Record{
		ir.NewRecord("eval", "fee", "simple", 120),
		ir.NewRecord("eval", "fee", "var", 80),
		ir.NewRecord("eval", "meval", "simple", 105),
		ir.NewRecord("parse", "fee", "simple", 200),
		ir.NewRecord("parse", "fasteval", "simple", 10),
	}

	got := Compare(base, head, DefaultThreshold)
	require.Len(t, got, 6)

	var keys []string
	var statuses []Status
	for _, c := range got {
		keys = append(keys, c.Key.String())
		statuses = append(statuses, c.Status)
	}
	assert.Equal(t, []string{
		"eval/fee/simple",
		"eval/fee/var",
		"eval/meval/simple",
		"parse/fasteval/simple",
		"parse/fee/simple",
		"parse/meval/complex",
	}, keys)
	assert.Equal(t, []Status{
		StatusRegression,
		StatusImprovement,
		StatusUnchanged,
		StatusNew,
		StatusUnchanged,
		StatusRemoved,
	}, statuses)

	assert.InDelta(t, 20.0, got[0].Diff, 1e-9)
	assert.InDelta(t, -20.0, got[1].Diff, 1e-9)
	assert.InDelta(t, 5.0, got[2].Diff, 1e-9)
	assert.Nil(t, got[3].Base)
	assert.Nil(t, got[5].Head)
}

func TestCompare_Threshold(t *testing.T) {
	base := []ir.Record{ir.NewRecord("eval", "fee", "simple", 100)}
	head := []ir.Record{ir.NewRecord("eval", "fee", "simple", 105)}

	assert.Equal(t, StatusUnchanged, Compare(base, head, 10)[0].Status)
	assert.Equal(t, StatusRegression, Compare(base, head, 2)[0].Status)
}

func TestCompare_ZeroBase(t *testing.T) {
	base := []ir.Record{
		ir.NewRecord("eval", "fee", "simple", 0),
		ir.NewRecord("eval", "fee", "var", 0),
	}
	head := []ir.Record{
		ir.NewRecord("eval", "fee", "simple", 50),
		ir.NewRecord("eval", "fee", "var", 0),
	}

	got := Compare(base, head, DefaultThreshold)
	require.Len(t, got, 2)

	assert.Zero(t, got[0].Diff)
	assert.Equal(t, StatusIncomparable, got[0].Status)
	assert.Equal(t, "eval/fee/simple: 0 -> 50 ns (incomparable)", got[0].String())

	assert.Equal(t, StatusUnchanged, got[1].Status)
	assert.Equal(t, Summary{Unchanged: 1, Incomparable: 1}, Summarize(got))
}

func TestCompare_Empty(t *testing.T) {
	assert.Empty(t, Compare(nil, nil, DefaultThreshold))
}

func TestSummarize(t *testing.T) {
	base := []ir.Record{
		ir.NewRecord("eval", "fee", "simple", 100),
		ir.NewRecord("eval", "fee", "var", 100),
	}
	head := []ir.Record{
		ir.NewRecord("eval", "fee", "simple", 150),
		ir.NewRecord("eval", "meval", "var", 1),
	}

	s := Summarize(Compare(base, head, DefaultThreshold))
	assert.Equal(t, Summary{Regressions: 1, New: 1, Removed: 1}, s)
}

func TestComparison_String(t *testing.T) {
	base := []ir.Record{ir.NewRecord("eval", "fee", "simple", 100), ir.NewRecord("eval", "fee", "var", 7)}
	head := []ir.Record{ir.NewRecord("eval", "fee", "simple", 150), ir.NewRecord("eval", "meval", "var", 3)}

	got := Compare(base, head, DefaultThreshold)
	require.Len(t, got, 3)
	assert.Equal(t, "eval/fee/simple: +50.00% (regression)", got[0].String())
	assert.Equal(t, "eval/fee/var: removed, was 7 ns", got[1].String())
	assert.Equal(t, "eval/meval/var: new, 3 ns", got[2].String())
}
