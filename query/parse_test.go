package query

import (
	"testing"

	. "github.com/fulldump/biff"
	"github.com/google/go-cmp/cmp"
)

func TestParse_Filters(t *testing.T) {
	spec := Parse("id_gte=15&title_like=qui&userId_ne=3&views_lte=100&author=typicode")

	expected := []Filter{
		{Field: "id", Op: OpGte, Value: "15"},
		{Field: "title", Op: OpLike, Value: "qui"},
		{Field: "userId", Op: OpNe, Value: "3"},
		{Field: "views", Op: OpLte, Value: "100"},
		{Field: "author", Op: OpEq, Value: "typicode"},
	}
	if diff := cmp.Diff(expected, spec.Filters); diff != "" {
		t.Errorf("filters mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_RepeatedKeys(t *testing.T) {
	spec := Parse("id_gte=10&id_gte=20&id_lte=30")

	AssertEqual(len(spec.Filters), 3)
	AssertEqual(spec.Filters[1], Filter{Field: "id", Op: OpGte, Value: "20"})
}

func TestParse_ReservedKeysAreNotFilters(t *testing.T) {
	spec := Parse("_sort=title&_order=desc&_page=2&_limit=5&_start=1&_end=3&_embed=comments&q=hello&_expand=user")

	AssertEqual(len(spec.Filters), 0)
	AssertEqual(spec.Sort, []SortKey{{Field: "title", Order: Desc}})
	AssertEqual(spec.Embed, []string{"comments"})
	AssertEqual(spec.Expand, []string{"user"})
	AssertEqual(spec.FullText, "hello")
	AssertEqual(spec.Window.Mode, WindowPage)
}

func TestParse_UnknownReservedKey(t *testing.T) {
	spec := Parse("_foo=bar&_=1")

	AssertEqual(len(spec.Filters), 0)
}

func TestParse_BareSuffixIsAField(t *testing.T) {
	spec := Parse("_like=x&like=y")

	AssertEqual(spec.Filters, []Filter{{Field: "like", Op: OpEq, Value: "y"}})
}

func TestParse_Unescape(t *testing.T) {
	spec := Parse("title=qui+est%20esse&q=a%26b&bad=%zz&author.name=x")

	expected := []Filter{
		{Field: "title", Op: OpEq, Value: "qui est esse"},
		{Field: "author.name", Op: OpEq, Value: "x"},
	}
	if diff := cmp.Diff(expected, spec.Filters); diff != "" {
		t.Errorf("filters mismatch (-want +got):\n%s", diff)
	}
	AssertEqual(spec.FullText, "a&b")
}

func TestParse_SortLists(t *testing.T) {
	spec := Parse("_sort=userId,title&_order=asc,DESC&_sort=views")

	expected := []SortKey{
		{Field: "userId", Order: Asc},
		{Field: "title", Order: Desc},
		{Field: "views", Order: Asc},
	}
	if diff := cmp.Diff(expected, spec.Sort); diff != "" {
		t.Errorf("sort mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_MalformedOrder(t *testing.T) {
	AssertEqual(Parse("_sort=id&_order=sideways").Sort[0].Order, Asc)
	AssertEqual(Parse("_sort=id&_order=Desc").Sort[0].Order, Desc)
}

func TestParse_EmbedLists(t *testing.T) {
	spec := Parse("_embed=comments,likes&_embed=comments&_embed=")

	AssertEqual(spec.Embed, []string{"comments", "likes"})
}

func TestParse_Empty(t *testing.T) {
	spec := Parse("")

	AssertEqual(len(spec.Filters), 0)
	AssertEqual(len(spec.Sort), 0)
	AssertEqual(spec.Window.Mode, WindowNone)
	AssertEqual(spec.FullText, "")
}
