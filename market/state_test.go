package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotLayout(t *testing.T) {
	e, _ := newTestEngine(t)

	st := e.Snapshot()
	require.Len(t, st.Markets, 2)
	assert.Len(t, st.Markets["alpha"], 3)
	assert.Len(t, st.Markets["beta"], 3)
	assert.NotContains(t, st.Markets, "gamma")
	assert.NotNil(t, st.TransactionHistory)
	assert.NotNil(t, st.ActiveEvents)
	assert.Empty(t, st.ActiveEvents)
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.Buy("alpha", "iron", 25)
	require.NoError(t, err)
	_, err = e.Sell("beta", "silk", 5)
	require.NoError(t, err)
	e.Advance(90 * time.Second)

	st := e.Snapshot()

	// A different seed proves nothing is re-rolled for saved records.
	restored, err := Restore(testCatalog(), st, nil, testOptions(999))
	require.NoError(t, err)

	again := restored.Snapshot()
	assert.Equal(t, st, again)

	for _, k := range e.order {
		want, _ := e.Record(k.Location, k.Commodity)
		got, ok := restored.Record(k.Location, k.Commodity)
		require.True(t, ok)
		assert.Equal(t, want.Stock, got.Stock)
		assert.Equal(t, want.MaxStock, got.MaxStock)
		assert.Equal(t, want.CurrentPrice, got.CurrentPrice)
		assert.Equal(t, want.SupplyLevel, got.SupplyLevel)
		assert.Equal(t, want.DemandLevel, got.DemandLevel)
		assert.Equal(t, want.PriceTrend, got.PriceTrend)
	}
	assert.Equal(t, e.History(), restored.History())
}

func TestRestoreTruncatesHistory(t *testing.T) {
	e, _ := newTestEngine(t)
	st := e.Snapshot()
	for i := 0; i < MaxHistory+20; i++ {
		st.TransactionHistory = append(st.TransactionHistory, Transaction{Quantity: i})
	}

	restored, err := Restore(testCatalog(), st, nil, testOptions(1))
	require.NoError(t, err)

	h := restored.History()
	require.Len(t, h, MaxHistory)
	assert.Equal(t, 20, h[0].Quantity)
	assert.Equal(t, MaxHistory+19, h[len(h)-1].Quantity)
}

func TestRestoreSeedsMissingPairs(t *testing.T) {
	e, _ := newTestEngine(t)
	st := e.Snapshot()
	delete(st.Markets["beta"], "silk")

	restored, err := Restore(testCatalog(), st, nil, testOptions(1))
	require.NoError(t, err)

	r, ok := restored.Record("beta", "silk")
	require.True(t, ok)
	assert.Equal(t, 2*r.Stock, r.MaxStock)
}

func TestRestoreRejectsCorruptState(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(st *State)
	}{
		{
			name: "stock above max",
			mutate: func(st *State) {
				r := st.Markets["alpha"]["iron"]
				r.Stock = r.MaxStock + 1
				st.Markets["alpha"]["iron"] = r
			},
		},
		{
			name: "negative stock",
			mutate: func(st *State) {
				r := st.Markets["alpha"]["iron"]
				r.Stock = -1
				st.Markets["alpha"]["iron"] = r
			},
		},
		{
			name: "location without market",
			mutate: func(st *State) {
				st.Markets["gamma"] = map[string]Record{"iron": {Stock: 1, MaxStock: 2}}
			},
		},
		{
			name: "unknown commodity",
			mutate: func(st *State) {
				st.Markets["alpha"]["unobtainium"] = Record{Stock: 1, MaxStock: 2}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t)
			st := e.Snapshot()
			tt.mutate(&st)

			_, err := Restore(testCatalog(), st, nil, testOptions(1))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrCorruptState)
		})
	}
}
