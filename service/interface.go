package service

import (
	"errors"

	"github.com/fulldump/restdb/collection"
	"github.com/fulldump/restdb/query"
)

var ErrorCollectionNotFound = errors.New("collection not found")

// Servicer is everything the HTTP layer needs from the engine. Reads see a
// single consistent snapshot of the database.
type Servicer interface {
	List(name string, spec *query.Spec) (*query.Result, error)
	Get(name, id string, spec *query.Spec) (collection.Record, error)
	Related(name, id, child string) ([]collection.Record, error)
	Create(name string, record collection.Record) (collection.Record, error)
	Replace(name, id string, record collection.Record) (collection.Record, error)
	Delete(name, id string) (collection.Record, error)
	Dump() map[string][]collection.Record
	Collections() []string
}
