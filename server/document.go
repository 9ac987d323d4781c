package server

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Collections present in a fresh database file.
var defaultCollections = []string{"users", "drivers", "vehicles", "locations", "rides", "payments"}

type item = map[string]interface{}

// Document is the whole database: one JSON file holding named
// collections of records. Every operation reads and rewrites the file,
// guarded by a single mutex. That only serializes access within this
// process; concurrent server processes are last-write-wins.
type Document struct {
	mu   sync.Mutex
	path string
}

func NewDocument(path string) *Document {
	return &Document{path: path}
}

// Init creates the database file with empty collections if it does not
// exist yet.
func (d *Document) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := os.Stat(d.path); err == nil {
		return nil
	}
	return d.write(emptyDB())
}

// Reset rewrites the database to its empty state, keeping a .bak copy
// of the previous contents.
func (d *Document) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if data, err := os.ReadFile(d.path); err == nil {
		if err := os.WriteFile(d.path+".bak", data, 0o644); err != nil {
			return err
		}
	}
	return d.write(emptyDB())
}

// All returns the entire database.
func (d *Document) All() (map[string][]item, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.read()
}

// List returns all items of a collection. ok is false for an unknown
// collection.
func (d *Document) List(collection string) ([]item, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	db, err := d.read()
	if err != nil {
		return nil, false, err
	}
	items, ok := db[collection]
	return items, ok, nil
}

// Insert appends an item to a collection.
func (d *Document) Insert(collection string, it item) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	db, err := d.read()
	if err != nil {
		return false, err
	}
	items, ok := db[collection]
	if !ok {
		return false, nil
	}
	db[collection] = append(items, it)
	return true, d.write(db)
}

// Get finds an item by its "id" field.
func (d *Document) Get(collection, id string) (item, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	db, err := d.read()
	if err != nil {
		return nil, false, err
	}
	for _, it := range db[collection] {
		if itemID(it) == id {
			return it, true, nil
		}
	}
	return nil, false, nil
}

// Replace swaps the stored item for the given one, wholesale.
func (d *Document) Replace(collection, id string, updated item) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	db, err := d.read()
	if err != nil {
		return false, err
	}
	for i, it := range db[collection] {
		if itemID(it) == id {
			db[collection][i] = updated
			return true, d.write(db)
		}
	}
	return false, nil
}

// Delete removes and returns the item with the given id.
func (d *Document) Delete(collection, id string) (item, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	db, err := d.read()
	if err != nil {
		return nil, false, err
	}
	for i, it := range db[collection] {
		if itemID(it) == id {
			db[collection] = append(db[collection][:i], db[collection][i+1:]...)
			return it, true, d.write(db)
		}
	}
	return nil, false, nil
}

// Query returns items whose fields all match the given string values.
// Values are compared by their string rendering, so booleans match
// "true"/"false" and numbers their decimal form.
func (d *Document) Query(collection string, params map[string]string) ([]item, bool, error) {
	items, ok, err := d.List(collection)
	if err != nil || !ok {
		return nil, ok, err
	}

	matched := []item{}
	for _, it := range items {
		match := true
		for key, want := range params {
			got, present := it[key]
			if !present || render(got) != want {
				match = false
				break
			}
		}
		if match {
			matched = append(matched, it)
		}
	}
	return matched, true, nil
}

func (d *Document) read() (map[string][]item, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		return nil, err
	}
	db := map[string][]item{}
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, err
	}
	return db, nil
}

func (d *Document) write(db map[string][]item) error {
	if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(d.path, data, 0o644)
}

func emptyDB() map[string][]item {
	db := map[string][]item{}
	for _, c := range defaultCollections {
		db[c] = []item{}
	}
	return db
}

func itemID(it item) string {
	return render(it["id"])
}

func render(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		// JSON numbers decode to float64; render integers without
		// a trailing ".0" so id and year lookups compare cleanly.
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", t)
	}
}
