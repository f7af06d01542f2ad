// Package repository defines the post store interface and errors.
package repository

import post "github.com/AI-Engineer2025/Masterblog-API/internal/domain/post"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithSeed preloads the store with the given posts. The posts are
// copied; seed ids are trusted as assigned by the seed loader.
func WithSeed(posts []post.Post) Option {
	return func(s *MemStore) {
		for _, p := range posts {
			s.posts = append(s.posts, p.Clone())
		}
	}
}
