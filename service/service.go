package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/fulldump/restdb/collection"
	"github.com/fulldump/restdb/database"
	"github.com/fulldump/restdb/metrics"
	"github.com/fulldump/restdb/query"
	"github.com/fulldump/restdb/relation"
)

type Service struct {
	db *database.Database
}

func NewService(db *database.Database) *Service {
	return &Service{
		db: db,
	}
}

// source exposes collections to the relation package. Only valid inside
// database.Read or database.Write.
type source struct {
	db *database.Database
}

func (s source) Records(name string) ([]collection.Record, bool) {
	col, exists := s.db.GetCollection(name)
	if !exists {
		return nil, false
	}
	return col.List(), true
}

// observe counts the operation. Names of missing collections come from
// clients and are not used as labels.
func observe(name, operation string, err error) {
	if errors.Is(err, ErrorCollectionNotFound) || errors.Is(err, database.ErrInvalidName) {
		name = ""
	}
	metrics.Operation(name, operation, err, ErrorCollectionNotFound, collection.ErrNotFound)
}

func (s *Service) getCollection(name string) (*collection.Collection, error) {
	col, exists := s.db.GetCollection(name)
	if !exists {
		return nil, fmt.Errorf("%w: '%s'", ErrorCollectionNotFound, name)
	}
	return col, nil
}

func (s *Service) List(name string, spec *query.Spec) (result *query.Result, err error) {
	defer func() { observe(name, "list", err) }()

	err = s.db.Read(func() error {
		col, err := s.getCollection(name)
		if err != nil {
			return err
		}

		result = query.Run(col.List(), spec)
		relation.Embed(source{s.db}, name, result.Records, spec.Embed)
		relation.Expand(source{s.db}, result.Records, spec.Expand)

		return nil
	})
	return
}

func (s *Service) Get(name, id string, spec *query.Spec) (record collection.Record, err error) {
	defer func() { observe(name, "get", err) }()

	err = s.db.Read(func() error {
		col, err := s.getCollection(name)
		if err != nil {
			return err
		}

		record, err = col.Get(id)
		if err != nil {
			return err
		}

		records := []collection.Record{record}
		relation.Embed(source{s.db}, name, records, spec.Embed)
		relation.Expand(source{s.db}, records, spec.Expand)

		return nil
	})
	return
}

// Related lists the records of child pointing to the record id of name.
func (s *Service) Related(name, id, child string) (records []collection.Record, err error) {
	defer func() { observe(name, "related", err) }()

	err = s.db.Read(func() error {
		col, err := s.getCollection(name)
		if err != nil {
			return err
		}

		parent, err := col.Get(id)
		if err != nil {
			return err
		}

		records = relation.Children(source{s.db}, name, parent["id"], child)

		return nil
	})
	return
}

// Create inserts record, creating the collection on first use. A collection
// created here is dropped again if the insert fails.
func (s *Service) Create(name string, record collection.Record) (created collection.Record, err error) {
	defer func() { observe(name, "create", err) }()

	err = s.db.Write(func() error {
		col, exists := s.db.GetCollection(name)
		if !exists {
			col, err = s.db.CreateCollection(name)
			if err != nil {
				return err
			}
		}

		created, err = col.Insert(record)
		if err != nil && !exists {
			dropErr := s.db.DropCollection(name)
			if dropErr != nil {
				log.Printf("WARNING: drop collection '%s' after failed insert: %s\n", name, dropErr.Error())
			}
		}
		return err
	})
	return
}

func (s *Service) Replace(name, id string, record collection.Record) (replaced collection.Record, err error) {
	defer func() { observe(name, "replace", err) }()

	err = s.db.Write(func() error {
		col, err := s.getCollection(name)
		if err != nil {
			return err
		}

		replaced, err = col.Replace(id, record)
		return err
	})
	return
}

func (s *Service) Delete(name, id string) (removed collection.Record, err error) {
	defer func() { observe(name, "delete", err) }()

	err = s.db.Write(func() error {
		col, err := s.getCollection(name)
		if err != nil {
			return err
		}

		removed, err = col.Remove(id)
		return err
	})
	return
}

func (s *Service) Dump() map[string][]collection.Record {
	return s.db.Dump()
}

func (s *Service) Collections() (names []string) {
	s.db.Read(func() error {
		names = s.db.CollectionNames()
		return nil
	})
	return
}
