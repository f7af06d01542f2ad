// Package post contains the blog post domain model.
package post

import "maps"

// Field names with reserved meaning. Everything else on a post is
// client-defined and stored verbatim.
const (
	FieldID      = "id"
	FieldTitle   = "title"
	FieldContent = "content"
)

// Required lists the fields every new post must carry.
var Required = []string{FieldTitle, FieldContent}

// Post is a single blog post. Posts are schemaless beyond the
// well-known fields above: clients may attach arbitrary extra fields
// and get them back unchanged. The id field is owned by the store and
// can never be set or changed through client payloads.
type Post map[string]any

// New builds a post from raw client fields. The input map is copied,
// not retained.
func New(fields map[string]any) Post {
	p := make(Post, len(fields)+1)
	maps.Copy(p, fields)
	return p
}

// Clone returns a copy of the post that shares no top-level state
// with the original. Writes always replace whole field values, so a
// top-level copy is enough to keep readers isolated from later
// updates.
func (p Post) Clone() Post {
	return maps.Clone(p)
}

// ID returns the post id, or 0 when unset. Ids decoded from JSON
// arrive as float64 and are accepted too.
func (p Post) ID() int64 {
	switch v := p[FieldID].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

// SetID stamps the store-assigned id onto the post.
func (p Post) SetID(id int64) {
	p[FieldID] = id
}

// Title returns the title, or "" when absent or not a string.
func (p Post) Title() string {
	return p.stringField(FieldTitle)
}

// Content returns the content, or "" when absent or not a string.
func (p Post) Content() string {
	return p.stringField(FieldContent)
}

func (p Post) stringField(name string) string {
	s, _ := p[name].(string)
	return s
}

// MissingFields reports which required fields are absent. Presence is
// a key-existence check only: any value, including an empty string,
// satisfies it.
func (p Post) MissingFields() []string {
	var missing []string
	for _, f := range Required {
		if _, ok := p[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

// Merge copies every field except id from fields into the post.
func (p Post) Merge(fields map[string]any) {
	for k, v := range fields {
		if k == FieldID {
			continue
		}
		p[k] = v
	}
}
