package query

import "strings"

// Operator is the comparison selected by a filter key suffix.
type Operator int

const (
	OpEq Operator = iota
	OpNe
	OpGte
	OpLte
	OpLike
)

var operatorSuffixes = []struct {
	suffix string
	op     Operator
}{
	{"_gte", OpGte},
	{"_lte", OpLte},
	{"_ne", OpNe},
	{"_like", OpLike},
}

func (o Operator) String() string {
	switch o {
	case OpEq:
		return "eq"
	case OpNe:
		return "ne"
	case OpGte:
		return "gte"
	case OpLte:
		return "lte"
	case OpLike:
		return "like"
	}
	return "unknown"
}

// splitOperator resolves `title_like` into (`title`, OpLike).
func splitOperator(key string) (string, Operator) {
	for _, candidate := range operatorSuffixes {
		field, found := strings.CutSuffix(key, candidate.suffix)
		if found && field != "" {
			return field, candidate.op
		}
	}
	return key, OpEq
}

type Filter struct {
	Field string
	Op    Operator
	Value string
}

type Order int

const (
	Asc Order = iota
	Desc
)

func ParseOrder(token string) Order {
	if strings.EqualFold(strings.TrimSpace(token), "desc") {
		return Desc
	}
	return Asc
}

func (o Order) String() string {
	if o == Desc {
		return "desc"
	}
	return "asc"
}

type SortKey struct {
	Field string
	Order Order
}

// Spec is the structural form of a list request. It is built per request
// and never stored.
type Spec struct {
	Filters  []Filter
	Sort     []SortKey
	Window   Window
	Embed    []string
	Expand   []string
	FullText string
}
