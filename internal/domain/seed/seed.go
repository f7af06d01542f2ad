// Package seed provides the initial contents of the post collection.
package seed

import (
	"fmt"
	"os"
	"strings"

	post "github.com/AI-Engineer2025/Masterblog-API/internal/domain/post"
	"gopkg.in/yaml.v3"
)

// Defaults returns the built-in starter posts.
func Defaults() []post.Post {
	return []post.Post{
		{post.FieldID: int64(1), post.FieldTitle: "Hello World", post.FieldContent: "This is my first post."},
		{post.FieldID: int64(2), post.FieldTitle: "Flask Tutorial", post.FieldContent: "Learn Flask with me."},
		{post.FieldID: int64(3), post.FieldTitle: "Python Tips", post.FieldContent: "Useful Python tricks."},
	}
}

// FromFile loads seed posts from a YAML file holding a list of
// mappings, each with at least a title and a content field. Extra
// fields are kept verbatim. Ids are assigned 1..n in file order; ids
// appearing in the file are discarded because the server owns them.
func FromFile(path string) ([]post.Post, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var entries []map[string]any
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	posts := make([]post.Post, 0, len(entries))
	for i, fields := range entries {
		p := post.New(fields)
		if missing := p.MissingFields(); len(missing) > 0 {
			return nil, fmt.Errorf("%w: entry %d lacks %s", ErrInvalidSeed, i+1, strings.Join(missing, ", "))
		}
		p.SetID(int64(i + 1))
		posts = append(posts, p)
	}
	return posts, nil
}
