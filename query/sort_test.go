package query

import (
	"testing"

	"github.com/Pallinder/go-randomdata"
	. "github.com/fulldump/biff"
	"github.com/google/go-cmp/cmp"

	"github.com/fulldump/restdb/collection"
)

func TestSort_UnknownFieldKeepsOrder(t *testing.T) {
	records := posts(20)

	sorted := Sort(records, []SortKey{{Field: "nope", Order: Desc}})

	if diff := cmp.Diff(idRange(1, 20), ids(sorted)); diff != "" {
		t.Errorf("order changed (-want +got):\n%s", diff)
	}
}

func TestSort_Desc(t *testing.T) {
	records := posts(30)

	sorted := Sort(records, []SortKey{{Field: "id", Order: Desc}})

	AssertEqual(ids(sorted)[0], "30")
	AssertEqual(ids(sorted)[29], "1")
}

func TestSort_NonIncreasing(t *testing.T) {
	records := []collection.Record{}
	for i := 0; i < 100; i++ {
		records = append(records, collection.Record{
			"id":    float64(i),
			"score": float64(randomdata.Number(0, 10)),
		})
	}

	sorted := Sort(records, []SortKey{{Field: "score", Order: Desc}})

	for i := 1; i < len(sorted); i++ {
		if sorted[i-1]["score"].(float64) < sorted[i]["score"].(float64) {
			t.Fatalf("position %d breaks descending order", i)
		}
	}
}

func TestSort_Stable(t *testing.T) {
	records := posts(30)

	sorted := Sort(records, []SortKey{{Field: "userId", Order: Desc}})

	expected := append(append(idRange(21, 30), idRange(11, 20)...), idRange(1, 10)...)
	if diff := cmp.Diff(expected, ids(sorted)); diff != "" {
		t.Errorf("unstable sort (-want +got):\n%s", diff)
	}
}

func TestSort_MissingValuesGoLast(t *testing.T) {
	records := []collection.Record{
		{"id": 1.0},
		{"id": 2.0, "rank": 5.0},
		{"id": 3.0, "rank": 1.0},
		{"id": 4.0},
	}

	AssertEqual(ids(Sort(records, []SortKey{{"rank", Asc}})), []string{"3", "2", "1", "4"})
	AssertEqual(ids(Sort(records, []SortKey{{"rank", Desc}})), []string{"2", "3", "1", "4"})
}

func TestSort_MultipleKeys(t *testing.T) {
	records := []collection.Record{
		{"id": 1.0, "userId": 2.0, "title": "b"},
		{"id": 2.0, "userId": 1.0, "title": "a"},
		{"id": 3.0, "userId": 2.0, "title": "c"},
		{"id": 4.0, "userId": 1.0, "title": "z"},
	}

	sorted := Sort(records, []SortKey{{"userId", Asc}, {"title", Desc}})

	AssertEqual(ids(sorted), []string{"4", "2", "3", "1"})
}

func TestSort_MixedTypes(t *testing.T) {
	records := []collection.Record{
		{"id": 1.0, "v": 10.0},
		{"id": 2.0, "v": 9.0},
		{"id": 3.0, "v": true},
		{"id": 4.0, "v": false},
	}

	AssertEqual(ids(Sort(records, []SortKey{{"v", Asc}})), []string{"2", "1", "4", "3"})
}
