package collection

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/google/btree"
	"github.com/google/uuid"
)

type Collection struct {
	Name     string
	Filename string // empty for memory only collections
	storage  Storage
	rows     *btree.BTreeG[*Row]
	ids      *IndexMap
	mutex    *sync.RWMutex
	seq      int64
	MaxID    int64 // highest integral id ever stored below maxAutoID, never decreases
}

// maxAutoID bounds MaxID so generated ids stay exact as float64.
const maxAutoID = 1<<53 - 1

func newCollection(name, filename string, storage Storage) *Collection {
	return &Collection{
		Name:     name,
		Filename: filename,
		storage:  storage,
		rows:     btree.NewG(32, func(a, b *Row) bool { return a.Less(b) }),
		ids:      NewIndexMap(),
		mutex:    &sync.RWMutex{},
	}
}

// NewCollection returns a collection that lives only in memory.
func NewCollection(name string) *Collection {
	return newCollection(name, "", nopStorage{})
}

// OpenCollection replays the command log at filename and keeps appending
// every mutation to it.
func OpenCollection(name, filename string) (*Collection, error) {
	storage, err := NewJSONStorage(filename)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	c := newCollection(name, filename, storage)

	err = LoadCollection(c)
	if err != nil {
		storage.Close()
		return nil, fmt.Errorf("load collection: %w", err)
	}

	return c, nil
}

func (c *Collection) persist(name string, payload []byte) error {
	command := &Command{
		Name:      name,
		Uuid:      uuid.New().String(),
		Timestamp: time.Now().UnixNano(),
		Payload:   payload,
	}

	err := c.storage.Persist(command)
	if err != nil {
		return fmt.Errorf("persist %s: %w", name, err)
	}

	return nil
}

// Insert adds a record at the end of the collection. A missing id is
// assigned from MaxID.
func (c *Collection) Insert(record Record) (Record, error) {
	return c.insert(record, true)
}

func (c *Collection) insert(record Record, persist bool) (Record, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	record = cloneRecord(record)
	if record["id"] == nil {
		next := c.MaxID + 1
		for c.ids.Has(strconv.FormatInt(next, 10)) {
			next++
		}
		record["id"] = float64(next)
	}

	payload, decoded, err := encodeRecord(record)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}

	id, ok := IDKey(decoded["id"])
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrInvalidID, decoded["id"])
	}

	if c.ids.Has(id) {
		return nil, fmt.Errorf("%w: '%s' already exists in '%s'", ErrDuplicateID, id, c.Name)
	}

	if persist {
		err = c.persist(CommandInsert, payload)
		if err != nil {
			return nil, err
		}
	}

	c.seq++
	row := &Row{
		Seq:     c.seq,
		ID:      id,
		Payload: payload,
		Record:  decoded,
	}
	c.rows.ReplaceOrInsert(row)
	c.ids.Set(row)

	if n, err := strconv.ParseInt(id, 10, 64); err == nil && n > c.MaxID && n < maxAutoID {
		c.MaxID = n
	}

	return cloneRecord(decoded), nil
}

func (c *Collection) Get(id string) (Record, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	row, ok := c.ids.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: '%s' in '%s'", ErrNotFound, id, c.Name)
	}

	return cloneRecord(row.Record), nil
}

// List returns a copy of every record in insertion order.
func (c *Collection) List() []Record {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	records := make([]Record, 0, c.rows.Len())
	c.rows.Ascend(func(row *Row) bool {
		records = append(records, cloneRecord(row.Record))
		return true
	})

	return records
}

// Traverse visits rows in insertion order until f returns false. Rows must
// not be modified.
func (c *Collection) Traverse(f func(row *Row) bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	c.rows.Ascend(f)
}

func (c *Collection) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.rows.Len()
}

// Replace swaps the whole record keeping its id and its position.
func (c *Collection) Replace(id string, record Record) (Record, error) {
	return c.replace(id, record, true)
}

func (c *Collection) replace(id string, record Record, persist bool) (Record, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	current, ok := c.ids.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: '%s' in '%s'", ErrNotFound, id, c.Name)
	}

	record = cloneRecord(record)
	record["id"] = current.Record["id"]

	payload, decoded, err := encodeRecord(record)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}

	if persist {
		command, err := json.Marshal(&replacePayload{
			ID:     current.ID,
			Record: payload,
		})
		if err != nil {
			return nil, fmt.Errorf("encode replace: %w", err)
		}
		err = c.persist(CommandReplace, command)
		if err != nil {
			return nil, err
		}
	}

	row := &Row{
		Seq:     current.Seq,
		ID:      current.ID,
		Payload: payload,
		Record:  decoded,
	}
	c.rows.ReplaceOrInsert(row)
	c.ids.Set(row)

	return cloneRecord(decoded), nil
}

// Remove deletes the record and returns it. Its id is never handed out again.
func (c *Collection) Remove(id string) (Record, error) {
	return c.remove(id, true)
}

func (c *Collection) remove(id string, persist bool) (Record, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	row, ok := c.ids.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: '%s' in '%s'", ErrNotFound, id, c.Name)
	}

	if persist {
		command, err := json.Marshal(&removePayload{ID: id})
		if err != nil {
			return nil, fmt.Errorf("encode remove: %w", err)
		}
		err = c.persist(CommandRemove, command)
		if err != nil {
			return nil, err
		}
	}

	c.rows.Delete(row)
	c.ids.Delete(id)

	return cloneRecord(row.Record), nil
}

func (c *Collection) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.storage.Close()
}

func (c *Collection) Drop() error {
	err := c.Close()
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}

	if c.Filename == "" {
		return nil
	}

	err = os.Remove(c.Filename)
	if err != nil {
		return fmt.Errorf("remove: %w", err)
	}

	return nil
}
