package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTransactions(t *testing.T, j *SQLite) []TransactionRecord {
	t.Helper()

	day := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	recs := []TransactionRecord{
		{ID: "T001", Time: day.Add(9 * time.Hour), Location: "nexus_prime", Commodity: "iron_ore", Action: ActionBuy, Quantity: 10, UnitPrice: 66, Total: 660},
		{ID: "T002", Time: day.Add(11 * time.Hour), Location: "ironhold", Commodity: "iron_ore", Action: ActionSell, Quantity: 10, UnitPrice: 70, Total: 700},
		{ID: "T003", Time: day.Add(26 * time.Hour), Location: "nexus_prime", Commodity: "void_silk", Action: ActionBuy, Quantity: 1, UnitPrice: 2640, Total: 2640},
	}
	for _, r := range recs {
		require.NoError(t, j.RecordTransaction(r))
	}
	return recs
}

func TestGetTransaction(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	recs := seedTransactions(t, j)

	got, err := j.GetTransaction("T002")
	require.NoError(t, err)

	want := recs[1]
	assert.Equal(t, want.ID, got.ID)
	assert.True(t, want.Time.Equal(got.Time))
	assert.Equal(t, want.Location, got.Location)
	assert.Equal(t, want.Commodity, got.Commodity)
	assert.Equal(t, want.Action, got.Action)
	assert.Equal(t, want.Quantity, got.Quantity)
	assert.Equal(t, want.UnitPrice, got.UnitPrice)
	assert.Equal(t, want.Total, got.Total)
}

func TestGetTransactionNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	_, err := j.GetTransaction("nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListTransactionsBetween(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	seedTransactions(t, j)

	start := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	got, err := j.ListTransactionsBetween(start, start.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "T001", got[0].ID)
	assert.Equal(t, "T002", got[1].ID)

	got, err = j.ListTransactionsBetween(start.Add(48*time.Hour), start.Add(72*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListTransactionsAt(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	seedTransactions(t, j)

	got, err := j.ListTransactionsAt("nexus_prime")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "T001", got[0].ID)
	assert.Equal(t, "T003", got[1].ID)
}
