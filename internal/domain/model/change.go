// Package model contains domain models passed between layers.
package model

import (
	"time"

	post "github.com/AI-Engineer2025/Masterblog-API/internal/domain/post"
)

// ChangeKind labels what happened to a post.
type ChangeKind string

// Change kinds published on the feed.
const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// Change is a single mutation of the post collection as published on
// the live change feed. The field tags are the feed's wire format.
// Post holds the state after a create or update, and the last known
// state for a delete.
type Change struct {
	Kind ChangeKind `json:"event"`
	ID   int64      `json:"id"`
	Post post.Post  `json:"post,omitempty"`
	TS   time.Time  `json:"ts"`
}
