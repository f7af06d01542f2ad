// Package repository defines the post store interface and errors.
package repository

import (
	"context"
	"sync"
	"time"

	post "github.com/AI-Engineer2025/Masterblog-API/internal/domain/post"
	"github.com/AI-Engineer2025/Masterblog-API/pkg/metrics"
)

// Slice-backed, in-memory Store implementation.
//
// Ordering: insertion order, which is what an unsorted listing
// returns. A single RWMutex guards the slice; update and delete do
// their read-modify-write under one write lock so concurrent
// mutations of the same post cannot interleave.

// MemStore keeps the post collection in process memory.
type MemStore struct {
	mu    sync.RWMutex
	posts []post.Post
}

// NewMemStore constructs an in-memory store with configuration
// options.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{}
	for _, opt := range opts {
		opt(s)
	}
	metrics.UpdatePostsTotal(len(s.posts))
	return s
}

// List implements Store.List. The returned posts are copies in
// insertion order.
func (s *MemStore) List(ctx context.Context) []post.Post {
	start := time.Now()
	defer func() {
		metrics.RecordStoreOperationDuration("list", float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]post.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, p.Clone())
	}
	return out
}

// Get implements Store.Get.
func (s *MemStore) Get(ctx context.Context, id int64) (post.Post, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreOperationDuration("get", float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.posts {
		if p.ID() == id {
			return p.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

// Insert implements Store.Insert. The new id is one above the highest
// id currently in the collection, so an id freed by deleting the
// newest post gets reused.
func (s *MemStore) Insert(ctx context.Context, fields map[string]any) post.Post {
	start := time.Now()
	defer func() {
		metrics.RecordStoreOperationDuration("insert", float64(time.Since(start).Milliseconds()))
	}()

	p := post.New(fields)

	s.mu.Lock()
	p.SetID(s.nextIDLocked())
	s.posts = append(s.posts, p)
	total := len(s.posts)
	s.mu.Unlock()

	metrics.UpdatePostsTotal(total)
	return p.Clone()
}

// Update implements Store.Update.
func (s *MemStore) Update(ctx context.Context, id int64, fields map[string]any) (post.Post, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreOperationDuration("update", float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.posts {
		if p.ID() == id {
			p.Merge(fields)
			return p.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

// Delete implements Store.Delete.
func (s *MemStore) Delete(ctx context.Context, id int64) (post.Post, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreOperationDuration("delete", float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	for i, p := range s.posts {
		if p.ID() == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			total := len(s.posts)
			s.mu.Unlock()

			metrics.UpdatePostsTotal(total)
			return p, nil
		}
	}
	s.mu.Unlock()
	return nil, ErrNotFound
}

// Count implements Store.Count.
func (s *MemStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

// nextIDLocked computes 1 + max existing id, or 1 for an empty
// collection. Callers must hold the write lock.
func (s *MemStore) nextIDLocked() int64 {
	var maxID int64
	for _, p := range s.posts {
		if id := p.ID(); id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}
