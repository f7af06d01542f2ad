// Package query implements filtering and ordering for post listings.
package query

import (
	"sort"
	"strings"

	post "github.com/AI-Engineer2025/Masterblog-API/internal/domain/post"
)

// Direction orders sorted results.
type Direction string

// Allowed directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Query captures the parameters of a post listing.
type Query struct {
	Search    string
	Sort      string
	Direction Direction
}

// ParseDirection validates a raw direction value. Only the exact
// literals "asc" and "desc" are accepted; an absent parameter never
// reaches this function.
func ParseDirection(raw string) (Direction, error) {
	switch raw {
	case string(Asc):
		return Asc, nil
	case string(Desc):
		return Desc, nil
	}
	return "", ErrInvalidDirection
}

// Apply runs the query against posts and returns the resulting view.
// Filtering happens first, then ordering. The input slice is never
// modified.
func Apply(posts []post.Post, q Query) []post.Post {
	out := Filter(posts, q.Search)
	Sort(out, q.Sort, q.Direction)
	return out
}

// Filter returns the posts whose title or content contains term,
// case-insensitively. An empty term keeps everything. Missing or
// non-string fields never match.
func Filter(posts []post.Post, term string) []post.Post {
	out := make([]post.Post, 0, len(posts))
	if term == "" {
		return append(out, posts...)
	}
	needle := strings.ToLower(term)
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title()), needle) ||
			strings.Contains(strings.ToLower(p.Content()), needle) {
			out = append(out, p)
		}
	}
	return out
}

// Sort stably orders posts in place by the named field, compared
// lowercased, so posts with equal keys keep their collection order.
// Fields other than title and content leave the order untouched.
// Missing or non-string values sort as empty strings.
func Sort(posts []post.Post, field string, dir Direction) {
	if field != post.FieldTitle && field != post.FieldContent {
		return
	}
	desc := dir == Desc
	sort.SliceStable(posts, func(i, j int) bool {
		a := strings.ToLower(stringField(posts[i], field))
		b := strings.ToLower(stringField(posts[j], field))
		if desc {
			return a > b
		}
		return a < b
	})
}

func stringField(p post.Post, name string) string {
	s, _ := p[name].(string)
	return s
}
