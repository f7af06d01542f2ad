// Package repository defines the post store interface and errors.
package repository

import (
	"context"

	post "github.com/AI-Engineer2025/Masterblog-API/internal/domain/post"
)

// Store provides read/write access to the post collection. All
// returned posts are copies owned by the caller.
type Store interface {
	// List returns every post in insertion order.
	List(ctx context.Context) []post.Post

	// Get returns the post with the given id.
	// Returns ErrNotFound if the id is unknown.
	Get(ctx context.Context, id int64) (post.Post, error)

	// Insert builds a post from fields, assigns the next free id and
	// appends it. Any client-supplied id is overwritten.
	Insert(ctx context.Context, fields map[string]any) post.Post

	// Update merges fields except id into the stored post in one
	// atomic step and returns the result.
	// Returns ErrNotFound if the id is unknown.
	Update(ctx context.Context, id int64, fields map[string]any) (post.Post, error)

	// Delete removes the post with the given id and returns its last
	// state. Returns ErrNotFound if the id is unknown.
	Delete(ctx context.Context, id int64) (post.Post, error)

	// Count returns the number of posts.
	Count(ctx context.Context) int
}
