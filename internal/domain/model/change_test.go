package model_test

import (
	"encoding/json"
	"testing"
	"time"

	model "github.com/AI-Engineer2025/Masterblog-API/internal/domain/model"
	post "github.com/AI-Engineer2025/Masterblog-API/internal/domain/post"
	. "github.com/smartystreets/goconvey/convey"
)

func TestChangeWireFormat(t *testing.T) {
	Convey("Given a change event", t, func() {
		ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		ch := model.Change{
			Kind: model.ChangeCreated,
			ID:   4,
			Post: post.Post{"id": int64(4), "title": "Hello World", "content": "hi"},
			TS:   ts,
		}

		Convey("When marshaling it", func() {
			raw, err := json.Marshal(ch)
			So(err, ShouldBeNil)

			var got map[string]any
			So(json.Unmarshal(raw, &got), ShouldBeNil)

			Convey("Then the feed wire fields should be present", func() {
				So(got["event"], ShouldEqual, "created")
				So(got["id"], ShouldEqual, 4)
				So(got["ts"], ShouldEqual, "2024-05-01T12:00:00Z")

				p, ok := got["post"].(map[string]any)
				So(ok, ShouldBeTrue)
				So(p["title"], ShouldEqual, "Hello World")
			})
		})

		Convey("When a deletion has no snapshot", func() {
			raw, err := json.Marshal(model.Change{Kind: model.ChangeDeleted, ID: 2, TS: ts})
			So(err, ShouldBeNil)

			var got map[string]any
			So(json.Unmarshal(raw, &got), ShouldBeNil)

			Convey("Then the post field should be omitted", func() {
				_, ok := got["post"]
				So(ok, ShouldBeFalse)
				So(got["event"], ShouldEqual, "deleted")
			})
		})
	})
}
