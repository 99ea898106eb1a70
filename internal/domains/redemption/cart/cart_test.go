package cart_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"nightlife/internal/domains/redemption/cart"
)

func priceList() map[string]cart.Item {
	return map[string]cart.Item{
		"six":   {ID: "six", Name: "Cocktail", UnitPrice: 6},
		"five":  {ID: "five", Name: "Wine", UnitPrice: 5},
		"three": {ID: "three", Name: "Beer", UnitPrice: 3},
		"four":  {ID: "four", Name: "Shot", UnitPrice: 4},
	}
}

func TestCart_AddItem(t *testing.T) {
	tests := []struct {
		name      string
		balance   int64
		adds      []string
		wantErr   error
		wantTotal int64
	}{
		{
			name:      "second add over balance is rejected",
			balance:   10,
			adds:      []string{"six", "five"},
			wantErr:   cart.ErrInsufficientBalance,
			wantTotal: 6,
		},
		{
			name:      "exactly the balance is allowed",
			balance:   10,
			adds:      []string{"six", "four"},
			wantTotal: 10,
		},
		{
			name:      "unknown item",
			balance:   10,
			adds:      []string{"three", "nope"},
			wantErr:   cart.ErrUnknownItem,
			wantTotal: 3,
		},
		{
			name:      "zero balance rejects everything",
			balance:   0,
			adds:      []string{"three"},
			wantErr:   cart.ErrInsufficientBalance,
			wantTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cart.New(tt.balance, priceList())

			var err error
			for _, id := range tt.adds {
				if err = c.AddItem(id); err != nil {
					break
				}
			}

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, tt.wantTotal, c.Total())
		})
	}
}

func TestCart_RemoveItem(t *testing.T) {
	c := cart.New(20, priceList())

	assert.NoError(t, c.AddItem("three"))
	assert.NoError(t, c.AddItem("three"))
	assert.NoError(t, c.AddItem("four"))

	c.RemoveItem("three")
	assert.Equal(t, 1, c.Quantity("three"))
	assert.Equal(t, int64(7), c.Total())

	c.RemoveItem("three")
	assert.Equal(t, 0, c.Quantity("three"))
	assert.Len(t, c.Finalize(), 1)

	c.RemoveItem("missing")
	assert.Equal(t, int64(4), c.Total())
}

func TestCart_Finalize(t *testing.T) {
	c := cart.New(20, priceList())

	assert.Nil(t, c.Finalize())

	assert.NoError(t, c.AddItem("three"))
	assert.NoError(t, c.AddItem("four"))
	assert.NoError(t, c.AddItem("three"))

	lines := c.Finalize()

	assert.Equal(t, []cart.Line{
		{ItemID: "three", Name: "Beer", Quantity: 2, UnitPrice: 3},
		{ItemID: "four", Name: "Shot", Quantity: 1, UnitPrice: 4},
	}, lines)
	assert.Equal(t, int64(10), cart.TotalOf(lines))

	lines[0].Quantity = 99
	assert.Equal(t, 2, c.Quantity("three"))
}

func TestCart_SnapshotRestore(t *testing.T) {
	c := cart.New(10, priceList())
	assert.NoError(t, c.AddItem("five"))

	restored := cart.Restore(c.Snapshot())

	assert.Equal(t, c.Total(), restored.Total())
	assert.Equal(t, int64(10), restored.Balance())
	assert.ErrorIs(t, restored.AddItem("six"), cart.ErrInsufficientBalance)
	assert.NoError(t, restored.AddItem("four"))
	assert.Equal(t, int64(5), c.Total())
}

func TestCart_TotalNeverExceedsBalance(t *testing.T) {
	ids := []string{"six", "five", "three", "four", "unknown"}
	rng := rand.New(rand.NewPCG(7, 42))

	for run := range 200 {
		balance := rng.Int64N(40)
		c := cart.New(balance, priceList())

		for range 50 {
			id := ids[rng.IntN(len(ids))]

			if rng.IntN(3) == 0 {
				c.RemoveItem(id)
			} else {
				_ = c.AddItem(id)
			}

			if !assert.LessOrEqual(t, c.Total(), balance, "run %d", run) {
				return
			}

			assert.Equal(t, cart.TotalOf(c.Finalize()), c.Total())
		}
	}
}
