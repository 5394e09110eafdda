package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hedwig/internal/core/domain"
)

func report(id string) *domain.RunReport {
	return &domain.RunReport{ID: id, Project: "firefox", State: domain.RunStateDone}
}

func TestNewReportStore(t *testing.T) {
	assert.Equal(t, DefaultReportCapacity, NewReportStore(0).capacity)
	assert.Equal(t, 3, NewReportStore(3).capacity)
}

func TestReportStore_SaveAndGet(t *testing.T) {
	store := NewReportStore(10)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, report("run-1")))

	got, err := store.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "firefox", got.Project)
}

func TestReportStore_GetMissing(t *testing.T) {
	store := NewReportStore(10)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportStore_SaveInvalid(t *testing.T) {
	store := NewReportStore(10)
	ctx := context.Background()

	assert.ErrorIs(t, store.Save(ctx, nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Save(ctx, &domain.RunReport{}), domain.ErrInvalidInput)
}

func TestReportStore_ListNewestFirst(t *testing.T) {
	store := NewReportStore(10)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Save(ctx, report(id)))
	}

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].ID)
	assert.Equal(t, "a", list[2].ID)
}

func TestReportStore_EvictsOldest(t *testing.T) {
	store := NewReportStore(2)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Save(ctx, report(id)))
	}

	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestReportStore_ReplaceMovesToNewest(t *testing.T) {
	store := NewReportStore(2)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, report("a")))
	require.NoError(t, store.Save(ctx, report("b")))

	updated := report("a")
	updated.State = domain.RunStateFailed
	require.NoError(t, store.Save(ctx, updated))
	require.NoError(t, store.Save(ctx, report("c")))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, domain.RunStateFailed, got.State)

	_, err = store.Get(ctx, "b")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportStore_Concurrency(t *testing.T) {
	store := NewReportStore(5)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Save(ctx, report(fmt.Sprintf("run-%d", n)))
			_, _ = store.List(ctx)
		}(i)
	}
	wg.Wait()

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 5)
}
