package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneybook/internal/core"
)

func ids(txs []core.Transaction) []string {
	out := make([]string, len(txs))
	for i, t := range txs {
		out[i] = t.ID
	}
	return out
}

func TestFilterAndSortTypeFilter(t *testing.T) {
	txs := []core.Transaction{
		tx("e1", core.Expense, "10", "", core.NewDate(2025, 1, 1)),
		tx("i1", core.Income, "99", "", core.NewDate(2025, 1, 5)),
		tx("e2", core.Expense, "20", "", core.NewDate(2025, 1, 3)),
	}

	got := FilterAndSort(txs, Query{Type: core.Expense})
	assert.Equal(t, []string{"e2", "e1"}, ids(got))

	all := FilterAndSort(txs, Query{Type: TypeAll})
	assert.Equal(t, []string{"i1", "e2", "e1"}, ids(all))
}

func TestFilterAndSortAmountOrder(t *testing.T) {
	d := core.NewDate(2025, 1, 1)
	txs := []core.Transaction{
		tx("a", core.Expense, "10", "", d),
		tx("b", core.Expense, "50", "", d),
		tx("c", core.Expense, "30", "", d),
	}

	assert.Equal(t, []string{"b", "c", "a"}, ids(FilterAndSort(txs, Query{Sort: SortHighLow})))
	assert.Equal(t, []string{"a", "c", "b"}, ids(FilterAndSort(txs, Query{Sort: SortLowHigh})))
}

func TestFilterAndSortDateRange(t *testing.T) {
	txs := []core.Transaction{
		tx("before", core.Income, "1", "", core.NewDate(2025, 2, 28)),
		tx("from", core.Income, "1", "", core.NewDate(2025, 3, 1)),
		tx("mid", core.Income, "1", "", core.NewDate(2025, 3, 15)),
		tx("to", core.Income, "1", "", core.NewDate(2025, 3, 31)),
		tx("after", core.Income, "1", "", core.NewDate(2025, 4, 1)),
	}

	got := FilterAndSort(txs, Query{From: core.NewDate(2025, 3, 1), To: core.NewDate(2025, 3, 31)})
	assert.Equal(t, []string{"to", "mid", "from"}, ids(got))

	single := FilterAndSort(txs, Query{From: core.NewDate(2025, 3, 15), To: core.NewDate(2025, 3, 15)})
	assert.Equal(t, []string{"mid"}, ids(single))

	open := FilterAndSort(txs, Query{To: core.NewDate(2025, 3, 1)})
	assert.Equal(t, []string{"from", "before"}, ids(open))
}

func TestFilterAndSortTieBreak(t *testing.T) {
	d := core.NewDate(2025, 1, 1)
	txs := []core.Transaction{
		tx("c", core.Expense, "10", "", d),
		tx("a", core.Expense, "10", "", d),
		tx("b", core.Expense, "10", "", d),
	}

	assert.Equal(t, []string{"c", "a", "b"}, ids(FilterAndSort(txs, Query{Sort: SortHighLow})))
	assert.Equal(t, []string{"a", "b", "c"}, ids(FilterAndSort(txs, Query{Sort: SortHighLow, TieBreak: TieBreakID})))
}

func TestFilterAndSortIdempotent(t *testing.T) {
	txs := mixedLedger()
	txs = append(txs, tx("x", core.Expense, "300", "", core.NewDate(2024, 12, 31)))

	for _, q := range []Query{
		{},
		{Sort: SortHighLow},
		{Sort: SortLowHigh, Type: core.Expense},
		{From: core.NewDate(2025, 1, 1), Sort: SortHighLow, TieBreak: TieBreakID},
	} {
		once := FilterAndSort(txs, q)
		twice := FilterAndSort(once, q)
		assert.Equal(t, ids(once), ids(twice))
	}
}

func TestFilterAndSortDoesNotMutateInput(t *testing.T) {
	txs := []core.Transaction{
		tx("a", core.Expense, "1", "", core.NewDate(2025, 1, 1)),
		tx("b", core.Expense, "2", "", core.NewDate(2025, 1, 2)),
	}
	_ = FilterAndSort(txs, Query{Sort: SortHighLow})
	assert.Equal(t, []string{"a", "b"}, ids(txs))
	assert.Empty(t, FilterAndSort(nil, Query{}))
}

func TestRecent(t *testing.T) {
	var txs []core.Transaction
	for day := 1; day <= 8; day++ {
		txs = append(txs, tx(string(rune('a'+day-1)), core.Income, "1", "", core.NewDate(2025, 1, day)))
	}
	got := Recent(txs, 5)
	require.Len(t, got, 5)
	assert.Equal(t, []string{"h", "g", "f", "e", "d"}, ids(got))
}

func TestParseQueryParts(t *testing.T) {
	o, err := ParseSortOrder("high_low")
	require.NoError(t, err)
	assert.Equal(t, SortHighLow, o)
	o, err = ParseSortOrder("")
	require.NoError(t, err)
	assert.Equal(t, SortNone, o)
	_, err = ParseSortOrder("random")
	assert.Error(t, err)

	typ, err := ParseTypeFilter("all")
	require.NoError(t, err)
	assert.Equal(t, TypeAll, typ)
	typ, err = ParseTypeFilter("expense")
	require.NoError(t, err)
	assert.Equal(t, core.Expense, typ)

	tb, err := ParseTieBreak("ID")
	require.NoError(t, err)
	assert.Equal(t, TieBreakID, tb)
}
