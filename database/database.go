package database

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fulldump/restdb/collection"
	"github.com/fulldump/restdb/utils"
)

const (
	StatusOpening   = "opening"
	StatusOperating = "operating"
	StatusClosing   = "closing"
)

const logExtension = ".jsonl"

var ErrInvalidName = errors.New("invalid collection name")

type Config struct {
	Dir      string // command logs, empty keeps everything in memory
	Seed     string // initial data for collections without a log
	Snapshot string // written on Stop when set
}

type Database struct {
	config      *Config
	status      atomic.Value
	Collections map[string]*collection.Collection
	replayed    map[string]bool // collections restored from their log
	mutex       *sync.RWMutex
	exit        chan struct{}
	stopOnce    sync.Once
}

func NewDatabase(config *Config) *Database {
	db := &Database{
		config:      config,
		Collections: map[string]*collection.Collection{},
		replayed:    map[string]bool{},
		mutex:       &sync.RWMutex{},
		exit:        make(chan struct{}),
	}
	db.status.Store(StatusOpening)

	return db
}

func (db *Database) GetStatus() string {
	return db.status.Load().(string)
}

// Read runs f holding the shared lock: every collection stays still while
// f reads them.
func (db *Database) Read(f func() error) error {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	return f()
}

// Write runs f holding the exclusive lock.
func (db *Database) Write(f func() error) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	return f()
}

func ValidName(name string) bool {
	if name == "" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

// GetCollection must be called inside Read or Write.
func (db *Database) GetCollection(name string) (*collection.Collection, bool) {
	col, exists := db.Collections[name]
	return col, exists
}

// CreateCollection must be called inside Write.
func (db *Database) CreateCollection(name string) (*collection.Collection, error) {

	if !ValidName(name) {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidName, name)
	}

	_, exists := db.Collections[name]
	if exists {
		return nil, fmt.Errorf("collection '%s' already exists", name)
	}

	col := collection.NewCollection(name)
	if db.config.Dir != "" {
		var err error
		col, err = collection.OpenCollection(name, filepath.Join(db.config.Dir, name+logExtension))
		if err != nil {
			return nil, err
		}
	}

	db.Collections[name] = col

	return col, nil
}

// DropCollection closes the collection and removes its log. Must be called
// inside Write.
func (db *Database) DropCollection(name string) error {

	col, exists := db.Collections[name]
	if !exists {
		return fmt.Errorf("collection '%s' not found", name)
	}

	delete(db.Collections, name)
	delete(db.replayed, name)

	return col.Drop()
}

// CollectionNames returns the names in alphabetical order. Must be called
// inside Read or Write.
func (db *Database) CollectionNames() []string {
	return utils.GetKeys(db.Collections)
}

func (db *Database) Load() error {
	err := db.Write(func() error {
		if db.GetStatus() != StatusOpening {
			return fmt.Errorf("database is %s", db.GetStatus())
		}

		err := db.loadLogs()
		if err != nil {
			return err
		}

		if db.config.Seed == "" {
			return nil
		}

		data, err := ReadSeed(db.config.Seed)
		if err != nil {
			return fmt.Errorf("read seed: %w", err)
		}

		return db.seed(data)
	})

	if err != nil {
		db.status.Store(StatusClosing)
		return err
	}

	db.status.CompareAndSwap(StatusOpening, StatusOperating)

	return nil
}

func (db *Database) loadLogs() error {
	dir := db.config.Dir
	if dir == "" {
		return nil
	}

	log.Printf("Loading database %s...\n", dir)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), logExtension) {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), logExtension)
		filename := filepath.Join(dir, entry.Name())

		t0 := time.Now()
		col, err := collection.OpenCollection(name, filename)
		if err != nil {
			log.Printf("ERROR: open collection '%s': %s\n", filename, err.Error())
			return err
		}
		log.Println(name, col.Len(), time.Since(t0))

		db.Collections[name] = col
		db.replayed[name] = true
	}

	return nil
}

// Seed fills collections that are still empty. Collections replayed from a
// log or already holding records are left as they are.
func (db *Database) Seed(data map[string][]collection.Record) error {
	return db.Write(func() error {
		return db.seed(data)
	})
}

func (db *Database) seed(data map[string][]collection.Record) error {
	for _, name := range utils.GetKeys(data) {
		col, exists := db.Collections[name]
		if !exists {
			var err error
			col, err = db.CreateCollection(name)
			if err != nil {
				return err
			}
		}

		if db.replayed[name] {
			log.Printf("WARNING: seed skipped for '%s', restored from its log\n", name)
			continue
		}
		if col.Len() > 0 {
			log.Printf("WARNING: seed skipped for '%s', it already has %d records\n", name, col.Len())
			continue
		}

		for i, record := range data[name] {
			_, err := col.Insert(record)
			if err != nil {
				return fmt.Errorf("seed '%s' record %d: %w", name, i, err)
			}
		}
	}

	return nil
}

// Dump copies every collection.
func (db *Database) Dump() map[string][]collection.Record {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	return db.dump()
}

func (db *Database) dump() map[string][]collection.Record {
	result := map[string][]collection.Record{}
	for name, col := range db.Collections {
		result[name] = col.List()
	}
	return result
}

func (db *Database) Start() error {

	go func() {
		err := db.Load()
		if err != nil {
			log.Println("ERROR: load database:", err.Error())
		}
	}()

	<-db.exit

	return nil
}

func (db *Database) Stop() error {

	var lastErr error

	db.stopOnce.Do(func() {
		defer close(db.exit)

		db.status.Store(StatusClosing)

		db.mutex.Lock()
		defer db.mutex.Unlock()

		if db.config.Snapshot != "" {
			err := SaveSnapshot(db.config.Snapshot, db.dump())
			if err != nil {
				log.Printf("ERROR: snapshot '%s': %s\n", db.config.Snapshot, err.Error())
				lastErr = err
			}
		}

		for _, name := range utils.GetKeys(db.Collections) {
			log.Printf("Closing '%s'...\n", name)
			err := db.Collections[name].Close()
			if err != nil {
				log.Printf("ERROR: close(%s): %s\n", name, err.Error())
				lastErr = err
			}
		}
	})

	return lastErr
}
