package collection

// IndexMap is the unique index by id. Callers hold the collection lock.
type IndexMap struct {
	Entries map[string]*Row
}

func NewIndexMap() *IndexMap {
	return &IndexMap{
		Entries: map[string]*Row{},
	}
}

func (i *IndexMap) Get(id string) (*Row, bool) {
	row, ok := i.Entries[id]
	return row, ok
}

func (i *IndexMap) Has(id string) bool {
	_, ok := i.Entries[id]
	return ok
}

func (i *IndexMap) Set(row *Row) {
	i.Entries[row.ID] = row
}

func (i *IndexMap) Delete(id string) {
	delete(i.Entries, id)
}
