package post_test

import (
	"testing"

	post "github.com/AI-Engineer2025/Masterblog-API/internal/domain/post"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given raw client fields", t, func() {
		fields := map[string]any{
			"title":    "Hello World",
			"content":  "This is my first post.",
			"category": "intro",
		}

		Convey("When building a post from them", func() {
			p := post.New(fields)

			Convey("Then all fields should be carried over", func() {
				So(p.Title(), ShouldEqual, "Hello World")
				So(p.Content(), ShouldEqual, "This is my first post.")
				So(p["category"], ShouldEqual, "intro")
			})

			Convey("And the input map should not be retained", func() {
				fields["title"] = "changed"
				So(p.Title(), ShouldEqual, "Hello World")
			})
		})
	})
}

func TestID(t *testing.T) {
	Convey("Given posts with differently typed id values", t, func() {
		Convey("When the id is an int64", func() {
			p := post.Post{"id": int64(7)}
			So(p.ID(), ShouldEqual, 7)
		})

		Convey("When the id is an int", func() {
			p := post.Post{"id": 7}
			So(p.ID(), ShouldEqual, 7)
		})

		Convey("When the id came from decoded JSON", func() {
			p := post.Post{"id": float64(7)}
			So(p.ID(), ShouldEqual, 7)
		})

		Convey("When the id is absent", func() {
			p := post.Post{"title": "no id"}
			So(p.ID(), ShouldEqual, 0)
		})

		Convey("When the id is not numeric", func() {
			p := post.Post{"id": "seven"}
			So(p.ID(), ShouldEqual, 0)
		})

		Convey("When stamping an id", func() {
			p := post.Post{}
			p.SetID(42)
			So(p.ID(), ShouldEqual, 42)
		})
	})
}

func TestStringFields(t *testing.T) {
	Convey("Given posts with odd title and content values", t, func() {
		Convey("When the fields are strings", func() {
			p := post.Post{"title": "Flask Tutorial", "content": "Learn Flask with me."}
			So(p.Title(), ShouldEqual, "Flask Tutorial")
			So(p.Content(), ShouldEqual, "Learn Flask with me.")
		})

		Convey("When the fields are missing", func() {
			p := post.Post{}
			So(p.Title(), ShouldEqual, "")
			So(p.Content(), ShouldEqual, "")
		})

		Convey("When the fields are not strings", func() {
			p := post.Post{"title": 123, "content": []string{"a"}}
			So(p.Title(), ShouldEqual, "")
			So(p.Content(), ShouldEqual, "")
		})
	})
}

func TestClone(t *testing.T) {
	Convey("Given a post", t, func() {
		p := post.Post{"id": int64(1), "title": "Hello World", "content": "This is my first post."}

		Convey("When cloning it", func() {
			c := p.Clone()

			Convey("Then the clone should match", func() {
				So(c, ShouldResemble, p)
			})

			Convey("And mutating the clone should not touch the original", func() {
				c["title"] = "changed"
				So(p.Title(), ShouldEqual, "Hello World")
			})

			Convey("And mutating the original should not touch the clone", func() {
				p["content"] = "changed"
				So(c.Content(), ShouldEqual, "This is my first post.")
			})
		})
	})
}

func TestMissingFields(t *testing.T) {
	Convey("Given posts at various stages of completeness", t, func() {
		Convey("When both required fields are present", func() {
			p := post.Post{"title": "t", "content": "c"}
			So(p.MissingFields(), ShouldBeEmpty)
		})

		Convey("When the fields are present but empty", func() {
			p := post.Post{"title": "", "content": ""}

			Convey("Then presence alone should satisfy the check", func() {
				So(p.MissingFields(), ShouldBeEmpty)
			})
		})

		Convey("When the title is missing", func() {
			p := post.Post{"content": "c"}
			So(p.MissingFields(), ShouldResemble, []string{"title"})
		})

		Convey("When the content is missing", func() {
			p := post.Post{"title": "t"}
			So(p.MissingFields(), ShouldResemble, []string{"content"})
		})

		Convey("When the post is empty", func() {
			p := post.Post{}
			So(p.MissingFields(), ShouldResemble, []string{"title", "content"})
		})
	})
}

func TestMerge(t *testing.T) {
	Convey("Given a stored post", t, func() {
		p := post.Post{"id": int64(3), "title": "Python Tips", "content": "Useful Python tricks."}

		Convey("When merging a partial update", func() {
			p.Merge(map[string]any{"title": "Go Tips"})

			Convey("Then the named field should change and the rest stay", func() {
				So(p.Title(), ShouldEqual, "Go Tips")
				So(p.Content(), ShouldEqual, "Useful Python tricks.")
				So(p.ID(), ShouldEqual, 3)
			})
		})

		Convey("When the update tries to change the id", func() {
			p.Merge(map[string]any{"id": int64(99), "title": "renumbered"})

			Convey("Then the id should be untouched", func() {
				So(p.ID(), ShouldEqual, 3)
				So(p.Title(), ShouldEqual, "renumbered")
			})
		})

		Convey("When the update introduces new fields", func() {
			p.Merge(map[string]any{"author": "jane", "tags": []any{"go"}})

			Convey("Then they should be stored verbatim", func() {
				So(p["author"], ShouldEqual, "jane")
				So(p["tags"], ShouldResemble, []any{"go"})
			})
		})
	})
}
