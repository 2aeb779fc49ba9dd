package cart

import (
	"context"
	"testing"

	"savora-storefront/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shopper = "user:1"

func newTestStore() (*Store, *storage.Memory) {
	mem := storage.NewMemory()
	return NewStore(mem), mem
}

func burger() Line {
	return Line{ID: "burger-1:spicy", Name: "Burger", Price: 250, Image: "burger.png",
		SelectedVariations: map[string]string{"Spice Level": "Hot"}}
}

func fries() Line {
	return Line{ID: "fries-2", Name: "Fries", Price: 120}
}

func assertTotalsConsistent(t *testing.T, c Cart) {
	t.Helper()
	var qty int
	var amount float64
	for _, l := range c.Lines {
		qty += l.Quantity
		amount += l.Price * float64(l.Quantity)
	}
	assert.Equal(t, qty, c.Totals.Quantity)
	assert.InDelta(t, amount, c.Totals.Amount, 1e-9)
}

func TestStore_AddLine(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()

	t.Run("New line starts at quantity 1", func(t *testing.T) {
		c, err := store.AddLine(ctx, shopper, burger())
		require.NoError(t, err)
		require.Len(t, c.Lines, 1)
		assert.Equal(t, 1, c.Lines[0].Quantity)
		assertTotalsConsistent(t, c)
	})

	t.Run("Same id increments instead of duplicating", func(t *testing.T) {
		c, err := store.AddLine(ctx, shopper, burger())
		require.NoError(t, err)
		require.Len(t, c.Lines, 1)
		assert.Equal(t, 2, c.Lines[0].Quantity)
		assertTotalsConsistent(t, c)
	})

	t.Run("Different id appends", func(t *testing.T) {
		c, err := store.AddLine(ctx, shopper, fries())
		require.NoError(t, err)
		require.Len(t, c.Lines, 2)
		assert.Equal(t, Totals{Quantity: 3, Amount: 620}, c.Totals)
	})
}

func TestStore_QuantityOps(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()

	_, err := store.AddLine(ctx, shopper, burger())
	require.NoError(t, err)

	t.Run("Increase", func(t *testing.T) {
		c, err := store.IncreaseQuantity(ctx, shopper, burger().ID)
		require.NoError(t, err)
		assert.Equal(t, 2, c.Lines[0].Quantity)
		assertTotalsConsistent(t, c)
	})

	t.Run("Increase unknown id is a no-op", func(t *testing.T) {
		c, err := store.IncreaseQuantity(ctx, shopper, "nope")
		require.NoError(t, err)
		assert.Equal(t, 2, c.Lines[0].Quantity)
		assertTotalsConsistent(t, c)
	})

	t.Run("Decrease", func(t *testing.T) {
		c, err := store.DecreaseQuantity(ctx, shopper, burger().ID)
		require.NoError(t, err)
		assert.Equal(t, 1, c.Lines[0].Quantity)
	})

	t.Run("Decrease at quantity 1 removes the line", func(t *testing.T) {
		c, err := store.DecreaseQuantity(ctx, shopper, burger().ID)
		require.NoError(t, err)
		assert.Empty(t, c.Lines)
		assert.Equal(t, Totals{}, c.Totals)
	})

	t.Run("Decrease unknown id is a no-op", func(t *testing.T) {
		c, err := store.DecreaseQuantity(ctx, shopper, "nope")
		require.NoError(t, err)
		assert.Empty(t, c.Lines)
	})
}

func TestStore_RemoveLine(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()

	_, err := store.AddLine(ctx, shopper, burger())
	require.NoError(t, err)
	_, err = store.IncreaseQuantity(ctx, shopper, burger().ID)
	require.NoError(t, err)

	// Removal ignores quantity.
	c, err := store.RemoveLine(ctx, shopper, burger().ID)
	require.NoError(t, err)
	assert.Empty(t, c.Lines)
	assert.Equal(t, Totals{}, c.Totals)
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	store, mem := newTestStore()

	_, err := store.AddLine(ctx, shopper, burger())
	require.NoError(t, err)
	require.True(t, mem.Has(shopper, storage.NSCart))

	require.NoError(t, store.Clear(ctx, shopper))

	// The snapshot is gone, not merely emptied, so nothing can repopulate
	// the cart on the next load.
	assert.False(t, mem.Has(shopper, storage.NSCart))

	c, err := store.Get(ctx, shopper)
	require.NoError(t, err)
	assert.Empty(t, c.Lines)
	assert.Equal(t, Totals{}, c.Totals)
}

func TestStore_TotalsInvariantOverSequences(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()

	ops := []func() (Cart, error){
		func() (Cart, error) { return store.AddLine(ctx, shopper, burger()) },
		func() (Cart, error) { return store.AddLine(ctx, shopper, fries()) },
		func() (Cart, error) { return store.AddLine(ctx, shopper, burger()) },
		func() (Cart, error) { return store.IncreaseQuantity(ctx, shopper, fries().ID) },
		func() (Cart, error) { return store.DecreaseQuantity(ctx, shopper, burger().ID) },
		func() (Cart, error) { return store.RemoveLine(ctx, shopper, fries().ID) },
		func() (Cart, error) { return store.DecreaseQuantity(ctx, shopper, burger().ID) },
	}

	for i, op := range ops {
		c, err := op()
		require.NoError(t, err, "op %d", i)
		assertTotalsConsistent(t, c)
	}
}

func TestStore_SurvivesReload(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()

	first := NewStore(mem)
	_, err := first.AddLine(ctx, shopper, burger())
	require.NoError(t, err)

	// A fresh store over the same snapshots sees the same cart.
	second := NewStore(mem)
	c, err := second.Get(ctx, shopper)
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, "Burger", c.Lines[0].Name)
	assert.Equal(t, map[string]string{"Spice Level": "Hot"}, c.Lines[0].SelectedVariations)
}

func TestStore_CorruptSnapshotIsDropped(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	require.NoError(t, mem.Put(ctx, shopper, storage.NSCart, []byte("{not json")))

	store := NewStore(mem)
	c, err := store.Get(ctx, shopper)
	require.NoError(t, err)
	assert.Empty(t, c.Lines)
	assert.False(t, mem.Has(shopper, storage.NSCart))
}

func TestDeriveTotals_Pure(t *testing.T) {
	lines := []Line{
		{ID: "a", Price: 10, Quantity: 3},
		{ID: "b", Price: 2.5, Quantity: 2},
	}

	first := deriveTotals(lines)
	second := deriveTotals(lines)

	assert.Equal(t, first, second)
	assert.Equal(t, 5, first.Quantity)
	assert.InDelta(t, 35, first.Amount, 1e-9)
}
