package query

import "strconv"

const DefaultLimit = 10

type WindowMode int

const (
	WindowNone WindowMode = iota
	WindowPage
	WindowSlice
)

func (m WindowMode) String() string {
	switch m {
	case WindowPage:
		return "page"
	case WindowSlice:
		return "slice"
	}
	return "none"
}

// Window selects the part of the ordered result returned to the client.
// Malformed parameters leave it Empty instead of failing the request.
type Window struct {
	Mode     WindowMode
	Page     int
	Limit    int
	HasLimit bool
	Start    int
	End      int
	HasEnd   bool
	Empty    bool
}

type param struct {
	value string
	set   bool
}

type windowParams struct {
	page, limit, start, end param
}

func atoi(p param) (int, bool) {
	n, err := strconv.Atoi(p.value)
	return n, err == nil
}

func (p windowParams) resolve() Window {
	switch {
	case p.page.set:
		w := Window{Mode: WindowPage, Page: 1, Limit: DefaultLimit, HasLimit: true}
		if page, ok := atoi(p.page); ok && page > 0 {
			w.Page = page
		}
		if p.limit.set {
			limit, ok := atoi(p.limit)
			if !ok || limit < 0 {
				w.Empty = true
			}
			w.Limit = limit
		}
		return w

	case p.start.set || p.end.set || p.limit.set:
		w := Window{Mode: WindowSlice}
		if p.start.set {
			start, ok := atoi(p.start)
			if !ok || start < 0 {
				w.Empty = true
			}
			w.Start = start
		}
		if p.end.set {
			end, ok := atoi(p.end)
			if !ok {
				w.Empty = true
			}
			w.End, w.HasEnd = end, true
		}
		if p.limit.set {
			limit, ok := atoi(p.limit)
			if !ok || limit < 0 {
				w.Empty = true
			}
			w.Limit, w.HasLimit = limit, true
		}
		return w
	}

	return Window{Mode: WindowNone}
}

// Bounds returns the half open range [start, end) of a result of size total.
func (w Window) Bounds(total int) (start, end int) {
	if w.Empty {
		return 0, 0
	}

	switch w.Mode {
	case WindowPage:
		if w.Limit <= 0 || w.Page-1 >= ceilDiv(total, w.Limit) {
			return 0, 0
		}
		start = (w.Page - 1) * w.Limit
		end = total
		if w.Limit < total-start {
			end = start + w.Limit
		}
		return start, end

	case WindowSlice:
		start = w.Start
		end = total
		if w.HasEnd {
			end = min(w.End, total)
		} else if w.HasLimit && w.Limit < total-start {
			end = start + w.Limit
		}
		if start >= end {
			return 0, 0
		}
		return start, end
	}

	return 0, total
}

// Pages are the page numbers advertised to clients in page mode. Zero
// means the relation does not exist.
type Pages struct {
	First, Prev, Next, Last int
}

func (w Window) Pages(total int) (Pages, bool) {
	if w.Mode != WindowPage || w.Empty || w.Limit <= 0 {
		return Pages{}, false
	}

	last := max(ceilDiv(total, w.Limit), 1)
	pages := Pages{First: 1, Last: last}
	if w.Page > 1 {
		pages.Prev = min(w.Page-1, last)
	}
	if w.Page < last {
		pages.Next = w.Page + 1
	}

	return pages, true
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a-1)/b + 1
}
