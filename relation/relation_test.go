package relation

import (
	"maps"
	"testing"

	. "github.com/fulldump/biff"

	"github.com/fulldump/restdb/collection"
)

type memory map[string][]collection.Record

func (m memory) Records(name string) ([]collection.Record, bool) {
	records, ok := m[name]
	if !ok {
		return nil, false
	}
	copied := make([]collection.Record, 0, len(records))
	for _, record := range records {
		copied = append(copied, maps.Clone(record))
	}
	return copied, true
}

func fixture() memory {
	return memory{
		"posts": {
			{"id": 1.0, "title": "one", "userId": 1.0},
			{"id": 2.0, "title": "two", "userId": 9.0},
			{"id": "abc", "title": "three"},
		},
		"comments": {
			{"id": 1.0, "postId": 1.0, "body": "first"},
			{"id": 2.0, "postId": "1", "body": "second"},
			{"id": 3.0, "postId": 2.0, "body": "third"},
			{"id": 4.0, "postId": "abc", "body": "fourth"},
			{"id": 5.0, "body": "orphan"},
		},
		"users": {
			{"id": 1.0, "name": "Leanne"},
		},
	}
}

func TestForeignKey(t *testing.T) {
	AssertEqual(ForeignKey("posts"), "postId")
	AssertEqual(ForeignKey("comments"), "commentId")
	AssertEqual(ForeignKey("categories"), "categoryId")
	AssertEqual(ForeignKey("people"), "personId")
}

func TestEmbed(t *testing.T) {
	source := fixture()
	posts, _ := source.Records("posts")

	Embed(source, "posts", posts, []string{"comments"})

	AssertEqualJson(posts[0]["comments"], []any{
		map[string]any{"id": 1, "postId": 1, "body": "first"},
		map[string]any{"id": 2, "postId": "1", "body": "second"},
	})
	AssertEqualJson(posts[1]["comments"], []any{
		map[string]any{"id": 3, "postId": 2, "body": "third"},
	})
	AssertEqualJson(posts[2]["comments"], []any{
		map[string]any{"id": 4, "postId": "abc", "body": "fourth"},
	})
}

func TestEmbed_UnknownCollection(t *testing.T) {
	source := fixture()
	posts, _ := source.Records("posts")

	Embed(source, "posts", posts, []string{"nothing"})

	for _, post := range posts {
		AssertEqualJson(post["nothing"], []any{})
	}
}

func TestEmbed_Completeness(t *testing.T) {
	source := fixture()
	posts, _ := source.Records("posts")

	Embed(source, "posts", posts, []string{"comments"})

	total := 0
	for _, post := range posts {
		for _, comment := range post["comments"].([]collection.Record) {
			AssertTrue(sameID(comment["postId"], post["id"]))
			total++
		}
	}
	AssertEqual(total, 4)
}

func TestChildren(t *testing.T) {
	source := fixture()

	comments := Children(source, "posts", 1.0, "comments")
	AssertEqual(len(comments), 2)

	comments = Children(source, "posts", "2", "comments")
	AssertEqual(len(comments), 1)
	AssertEqual(comments[0]["body"], "third")

	AssertEqual(len(Children(source, "posts", 1.0, "likes")), 0)
}

func TestExpand(t *testing.T) {
	source := fixture()
	posts, _ := source.Records("posts")

	Expand(source, posts, []string{"user", "category"})

	AssertEqualJson(posts[0]["user"], map[string]any{"id": 1, "name": "Leanne"})
	_, hasUser := posts[1]["user"]
	AssertFalse(hasUser)
	_, hasUser = posts[2]["user"]
	AssertFalse(hasUser)
	_, hasCategory := posts[0]["category"]
	AssertFalse(hasCategory)
}
