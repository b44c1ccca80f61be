package query

import "github.com/fulldump/restdb/collection"

type Result struct {
	Records []collection.Record
	Total   int // matches before the window is applied
	Start   int
	End     int
}

// Run filters, sorts and windows records. Records are not copied, callers
// own the slice they pass in.
func Run(records []collection.Record, spec *Spec) *Result {
	matched := Evaluate(records, spec.Filters, spec.FullText)
	sorted := Sort(matched, spec.Sort)
	start, end := spec.Window.Bounds(len(sorted))

	return &Result{
		Records: sorted[start:end],
		Total:   len(sorted),
		Start:   start,
		End:     end,
	}
}
