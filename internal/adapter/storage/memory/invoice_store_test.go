package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"strike-connect/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInvoice(s string) *domain.Invoice {
	return &domain.Invoice{
		Type:     domain.InvoiceTypeIncoming,
		Invoice:  s,
		Amount:   1000,
		Metadata: domain.InvoiceMetadata{State: domain.InvoiceStateUnpaid, InvoiceID: "id-" + s},
	}
}

func TestInvoiceStore_PutGet(t *testing.T) {
	store := NewInvoiceStore(0)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, newInvoice("lnbc1")))

	got, err := store.Get(ctx, "lnbc1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "id-lnbc1", got.Metadata.InvoiceID)

	missing, err := store.Get(ctx, "lnbc2")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestInvoiceStore_ReturnsCopies(t *testing.T) {
	store := NewInvoiceStore(0)
	ctx := context.Background()

	inv := newInvoice("lnbc1")
	require.NoError(t, store.Put(ctx, inv))
	inv.Description = "mutated after put"

	got, _ := store.Get(ctx, "lnbc1")
	got.Metadata.State = "mutated after get"

	again, _ := store.Get(ctx, "lnbc1")
	assert.Empty(t, again.Description)
	assert.Equal(t, domain.InvoiceStateUnpaid, again.Metadata.State)
}

func TestInvoiceStore_RejectsEmptyInvoice(t *testing.T) {
	store := NewInvoiceStore(0)
	assert.Error(t, store.Put(context.Background(), &domain.Invoice{}))
	assert.Error(t, store.Put(context.Background(), nil))
}

func TestInvoiceStore_UpdateState(t *testing.T) {
	store := NewInvoiceStore(0)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, newInvoice("lnbc1")))

	updated, err := store.UpdateState(ctx, "lnbc1", domain.InvoiceStatePaid)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatePaid, updated.Metadata.State)

	got, _ := store.Get(ctx, "lnbc1")
	assert.Equal(t, domain.InvoiceStatePaid, got.Metadata.State)

	none, err := store.UpdateState(ctx, "unknown", domain.InvoiceStatePaid)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestInvoiceStore_UpsertKeepsSingleEntry(t *testing.T) {
	store := NewInvoiceStore(0)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, newInvoice("lnbc1")))
	second := newInvoice("lnbc1")
	second.Description = "second"
	require.NoError(t, store.Put(ctx, second))

	n, _ := store.Count(ctx)
	assert.Equal(t, 1, n)
	got, _ := store.Get(ctx, "lnbc1")
	assert.Equal(t, "second", got.Description)
}

func TestInvoiceStore_EvictsOldest(t *testing.T) {
	store := NewInvoiceStore(2)
	ctx := context.Background()

	for _, s := range []string{"a", "b", "c"} {
		require.NoError(t, store.Put(ctx, newInvoice(s)))
	}

	n, _ := store.Count(ctx)
	assert.Equal(t, 2, n)

	evicted, _ := store.Get(ctx, "a")
	assert.Nil(t, evicted)
	kept, _ := store.Get(ctx, "c")
	assert.NotNil(t, kept)
}

func TestInvoiceStore_Concurrent(t *testing.T) {
	store := NewInvoiceStore(0)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("lnbc%d", i)
			_ = store.Put(ctx, newInvoice(key))
			_, _ = store.UpdateState(ctx, key, domain.InvoiceStatePaid)
			_, _ = store.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	n, _ := store.Count(ctx)
	assert.Equal(t, 50, n)
}
