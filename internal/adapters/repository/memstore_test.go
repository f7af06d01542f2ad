package repository_test

import (
	"context"
	"sync"
	"testing"

	repository "github.com/AI-Engineer2025/Masterblog-API/internal/adapters/repository"
	post "github.com/AI-Engineer2025/Masterblog-API/internal/domain/post"
	seed "github.com/AI-Engineer2025/Masterblog-API/internal/domain/seed"
	"github.com/stretchr/testify/require"
)

func TestMemStore(t *testing.T) {
	for scenario, fn := range map[string]func(t *testing.T, store *repository.MemStore){
		"list returns seeds in insertion order":           testListOrder,
		"list hands out copies":                           testListCopies,
		"insert assigns one above the highest id":         testInsertAssignsID,
		"insert overwrites a client-supplied id":          testInsertOwnsID,
		"deleting the newest post frees its id for reuse": testIDReuse,
		"get returns the post or ErrNotFound":             testGet,
		"update merges fields atomically, id kept":        testUpdateMerges,
		"delete removes exactly one post":                 testDelete,
		"count follows the collection size":               testCount,
	} {
		t.Run(scenario, func(t *testing.T) {
			store := repository.NewMemStore(repository.WithSeed(seed.Defaults()))
			fn(t, store)
		})
	}
}

func testListOrder(t *testing.T, store *repository.MemStore) {
	ctx := context.Background()

	posts := store.List(ctx)
	require.Len(t, posts, 3)
	require.Equal(t, int64(1), posts[0].ID())
	require.Equal(t, "Hello World", posts[0].Title())
	require.Equal(t, int64(2), posts[1].ID())
	require.Equal(t, int64(3), posts[2].ID())
}

func testListCopies(t *testing.T, store *repository.MemStore) {
	ctx := context.Background()

	store.List(ctx)[0]["title"] = "mutated"

	fresh, err := store.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Hello World", fresh.Title())
}

func testInsertAssignsID(t *testing.T, store *repository.MemStore) {
	ctx := context.Background()

	created := store.Insert(ctx, map[string]any{"title": "t", "content": "c"})
	require.Equal(t, int64(4), created.ID())
	require.Equal(t, "t", created.Title())
	require.Equal(t, 4, store.Count(ctx))
}

func testInsertOwnsID(t *testing.T, store *repository.MemStore) {
	ctx := context.Background()

	created := store.Insert(ctx, map[string]any{"id": int64(42), "title": "t", "content": "c"})
	require.Equal(t, int64(4), created.ID())
}

func testIDReuse(t *testing.T, store *repository.MemStore) {
	ctx := context.Background()

	_, err := store.Delete(ctx, 3)
	require.NoError(t, err)

	created := store.Insert(ctx, map[string]any{"title": "t", "content": "c"})
	require.Equal(t, int64(3), created.ID())

	// Deleting from the middle leaves the maximum untouched.
	_, err = store.Delete(ctx, 1)
	require.NoError(t, err)
	created = store.Insert(ctx, map[string]any{"title": "t2", "content": "c2"})
	require.Equal(t, int64(4), created.ID())
}

func testGet(t *testing.T, store *repository.MemStore) {
	ctx := context.Background()

	p, err := store.Get(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, "Flask Tutorial", p.Title())

	_, err = store.Get(ctx, 999)
	require.ErrorIs(t, err, repository.ErrNotFound)

	// Mutating the returned copy must not reach the store.
	p["content"] = "mutated"
	again, err := store.Get(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, "Learn Flask with me.", again.Content())
}

func testUpdateMerges(t *testing.T, store *repository.MemStore) {
	ctx := context.Background()

	updated, err := store.Update(ctx, 2, map[string]any{
		"id":     int64(77),
		"title":  "Go Tutorial",
		"author": "jane",
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), updated.ID())
	require.Equal(t, "Go Tutorial", updated.Title())
	require.Equal(t, "Learn Flask with me.", updated.Content())
	require.Equal(t, "jane", updated["author"])

	stored, err := store.Get(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, updated, stored)

	_, err = store.Update(ctx, 999, map[string]any{"title": "x"})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func testDelete(t *testing.T, store *repository.MemStore) {
	ctx := context.Background()

	removed, err := store.Delete(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, "Flask Tutorial", removed.Title())
	require.Equal(t, 2, store.Count(ctx))

	ids := make([]int64, 0, 2)
	for _, p := range store.List(ctx) {
		ids = append(ids, p.ID())
	}
	require.Equal(t, []int64{1, 3}, ids)

	_, err = store.Delete(ctx, 2)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func testCount(t *testing.T, store *repository.MemStore) {
	ctx := context.Background()

	require.Equal(t, 3, store.Count(ctx))
	store.Insert(ctx, map[string]any{"title": "t", "content": "c"})
	require.Equal(t, 4, store.Count(ctx))
	_, err := store.Delete(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 3, store.Count(ctx))
}

func TestMemStoreEmpty(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemStore()

	require.Empty(t, store.List(ctx))
	require.Equal(t, 0, store.Count(ctx))

	created := store.Insert(ctx, map[string]any{"title": "first", "content": "c"})
	require.Equal(t, int64(1), created.ID())
}

func TestMemStoreSeedIsolation(t *testing.T) {
	ctx := context.Background()
	seeds := []post.Post{{"id": int64(1), "title": "seed", "content": "c"}}
	store := repository.NewMemStore(repository.WithSeed(seeds))

	seeds[0]["title"] = "mutated"

	p, err := store.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "seed", p.Title())
}

func TestMemStoreConcurrentInserts(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemStore()

	const n = 64
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			store.Insert(ctx, map[string]any{"title": "t", "content": "c"})
		}()
	}
	wg.Wait()

	require.Equal(t, n, store.Count(ctx))

	seen := make(map[int64]bool, n)
	for _, p := range store.List(ctx) {
		require.False(t, seen[p.ID()], "duplicate id %d", p.ID())
		seen[p.ID()] = true
	}
}
