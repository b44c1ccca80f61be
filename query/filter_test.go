package query

import (
	"testing"

	. "github.com/fulldump/biff"

	"github.com/fulldump/restdb/collection"
)

func sampleRecords() []collection.Record {
	return []collection.Record{
		{"id": 1.0, "title": "json-server", "views": 100.0, "published": true, "author": map[string]any{"name": "typicode"}},
		{"id": 2.0, "title": "Json Server", "views": 7.5, "published": false, "tags": []any{"a", "b"}},
		{"id": "x3", "title": "restdb", "views": "many", "published": nil},
		{"id": 4.0, "title": "<b>html</b>"},
	}
}

func TestFilter_EqualityCoercesToFieldType(t *testing.T) {
	records := sampleRecords()

	AssertEqual(ids(Evaluate(records, []Filter{{"views", OpEq, "100"}}, "")), []string{"1"})
	AssertEqual(ids(Evaluate(records, []Filter{{"views", OpEq, "100.0"}}, "")), []string{"1"})
	AssertEqual(ids(Evaluate(records, []Filter{{"views", OpEq, "7.5"}}, "")), []string{"2"})
	AssertEqual(ids(Evaluate(records, []Filter{{"views", OpEq, "many"}}, "")), []string{"x3"})
	AssertEqual(ids(Evaluate(records, []Filter{{"id", OpEq, "x3"}}, "")), []string{"x3"})
	AssertEqual(ids(Evaluate(records, []Filter{{"published", OpEq, "true"}}, "")), []string{"1"})
	AssertEqual(ids(Evaluate(records, []Filter{{"published", OpEq, "false"}}, "")), []string{"2"})
	AssertEqual(ids(Evaluate(records, []Filter{{"published", OpEq, "1"}}, "")), []string{})
	AssertEqual(ids(Evaluate(records, []Filter{{"published", OpEq, "null"}}, "")), []string{"x3"})
	AssertEqual(ids(Evaluate(records, []Filter{{"tags", OpEq, `["a","b"]`}}, "")), []string{"2"})
}

func TestFilter_DottedPath(t *testing.T) {
	records := sampleRecords()

	AssertEqual(ids(Evaluate(records, []Filter{{"author.name", OpEq, "typicode"}}, "")), []string{"1"})
	AssertEqual(ids(Evaluate(records, []Filter{{"author.email", OpEq, "typicode"}}, "")), []string{})
}

func TestFilter_NotEqual(t *testing.T) {
	records := sampleRecords()

	AssertEqual(ids(Evaluate(records, []Filter{{"views", OpNe, "100"}}, "")), []string{"2", "x3", "4"})
	AssertEqual(ids(Evaluate(records, []Filter{{"id", OpNe, "1"}}, "")), []string{"2", "x3", "4"})
}

func TestFilter_Ranges(t *testing.T) {
	records := sampleRecords()

	AssertEqual(ids(Evaluate(records, []Filter{{"views", OpGte, "8"}}, "")), []string{"1", "x3"})
	AssertEqual(ids(Evaluate(records, []Filter{{"views", OpLte, "8"}}, "")), []string{"2"})
	AssertEqual(ids(Evaluate(records, []Filter{{"title", OpGte, "r"}}, "")), []string{"x3"})
	AssertEqual(ids(Evaluate(records, []Filter{
		{"views", OpGte, "7"},
		{"views", OpLte, "100"},
	}, "")), []string{"1", "2"})
}

func TestFilter_Like(t *testing.T) {
	records := sampleRecords()

	AssertEqual(ids(Evaluate(records, []Filter{{"title", OpLike, "json"}}, "")), []string{"1"})
	AssertEqual(ids(Evaluate(records, []Filter{{"title", OpLike, "Server"}}, "")), []string{"2"})
	AssertEqual(ids(Evaluate(records, []Filter{{"views", OpLike, "7."}}, "")), []string{"2"})
}

func TestFilter_UnknownFieldMatchesNothing(t *testing.T) {
	records := sampleRecords()

	for _, op := range []Operator{OpEq, OpNe, OpGte, OpLte, OpLike} {
		result := Evaluate(records, []Filter{{"genre", op, "nature"}}, "")
		if len(result) != 0 {
			t.Errorf("operator %s on unknown field returned %d records", op, len(result))
		}
	}
}

func TestSearch(t *testing.T) {
	records := sampleRecords()

	AssertEqual(ids(Evaluate(records, nil, "typicode")), []string{"1"})
	AssertEqual(ids(Evaluate(records, nil, "server")), []string{"1"})
	AssertEqual(ids(Evaluate(records, nil, "<b>")), []string{"4"})
	AssertEqual(ids(Evaluate(records, nil, `"id":2`)), []string{"2"})
	AssertEqual(len(Evaluate(records, nil, "")), 4)
}

func TestSearch_KeysInSortedOrder(t *testing.T) {
	record := collection.Record{"title": "a", "body": "b"}

	AssertTrue(Search(record, `"body":"b","title":"a"`))
	AssertFalse(Search(record, `"title":"a","body":"b"`))
}

func TestEvaluate_IntersectsSearchAndFilters(t *testing.T) {
	records := sampleRecords()

	result := Evaluate(records, []Filter{{"views", OpGte, "1"}}, "json")

	AssertEqual(ids(result), []string{"1"})
}
