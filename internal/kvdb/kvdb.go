// ABOUTME: Generic embedded store wrapper over Badger with named tables.
// ABOUTME: Tables carry a declared primary key, secondary indexes, and a schema version.
package kvdb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	badger "github.com/dgraph-io/badger/v3"
)

// IndexSpec declares a secondary index over one record field.
type IndexSpec struct {
	Name     string
	KeyField string
}

// TableSpec declares a named table with its primary key field and
// optional secondary indexes.
type TableSpec struct {
	Name     string
	KeyField string
	Indexes  []IndexSpec
}

// Schema declares the database name, version, and table set. Upgrades
// are additive only: raising the version registers newly declared
// tables and never touches existing data.
type Schema struct {
	Name    string
	Version int
	Tables  []TableSpec
}

// meta is the on-disk schema record.
type meta struct {
	Version int      `json:"version"`
	Tables  []string `json:"tables"`
}

// DB wraps a Badger database with table-scoped, indexed access.
// Every exported call runs as a single Badger transaction.
type DB struct {
	db           *badger.DB
	schema       Schema
	tables       map[string]TableSpec
	priorVersion int
}

// Open opens or creates the database at path and applies the schema.
// A *InitError is returned when the engine cannot be opened; callers
// treat that as recoverable and select a fallback store.
func Open(path string, schema Schema) (*DB, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	bdb, err := badger.Open(opts)
	if err != nil {
		return nil, &InitError{Path: path, Err: err}
	}

	d := &DB{
		db:     bdb,
		schema: schema,
		tables: make(map[string]TableSpec, len(schema.Tables)),
	}
	for _, t := range schema.Tables {
		d.tables[t.Name] = t
	}

	if err := d.applySchema(); err != nil {
		_ = bdb.Close()
		return nil, err
	}
	return d, nil
}

// applySchema reads the stored meta record and registers newly
// declared tables. Existing tables and their data are left untouched.
func (d *DB) applySchema() error {
	metaKey := []byte("!m/" + d.schema.Name)

	return d.db.Update(func(txn *badger.Txn) error {
		var stored meta
		item, err := txn.Get(metaKey)
		switch err {
		case nil:
			if err := item.Value(func(v []byte) error {
				return json.Unmarshal(v, &stored)
			}); err != nil {
				return &InitError{Path: d.schema.Name, Err: err}
			}
		case badger.ErrKeyNotFound:
			// First open, meta gets written below.
		default:
			return &InitError{Path: d.schema.Name, Err: err}
		}

		if stored.Version > d.schema.Version {
			return &InitError{
				Path: d.schema.Name,
				Err:  fmt.Errorf("stored schema version %d is newer than %d", stored.Version, d.schema.Version),
			}
		}
		d.priorVersion = stored.Version

		known := make(map[string]bool, len(stored.Tables))
		for _, name := range stored.Tables {
			known[name] = true
		}
		merged := stored.Tables
		for _, t := range d.schema.Tables {
			if !known[t.Name] {
				merged = append(merged, t.Name)
			}
		}

		data, err := json.Marshal(meta{Version: d.schema.Version, Tables: merged})
		if err != nil {
			return &InitError{Path: d.schema.Name, Err: err}
		}
		if err := txn.Set(metaKey, data); err != nil {
			return &InitError{Path: d.schema.Name, Err: err}
		}
		return nil
	})
}

// Version returns the schema version the database now carries.
func (d *DB) Version() int { return d.schema.Version }

// PriorVersion returns the schema version found on disk when the
// database was opened, 0 for a fresh database. The persistence layer
// uses it to decide whether the legacy-layout migration must run.
func (d *DB) PriorVersion() int { return d.priorVersion }

// Close releases the underlying engine. Safe to call multiple times.
func (d *DB) Close() error {
	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}

// Put inserts or replaces a record by key and refreshes its secondary
// index entries. The record must be a JSON object when the table
// declares indexes.
func (d *DB) Put(table, key string, record []byte) error {
	spec, err := d.table(table)
	if err != nil {
		return err
	}
	if d.db == nil {
		return &WriteError{Table: table, Err: ErrClosed}
	}

	err = d.db.Update(func(txn *badger.Txn) error {
		if err := d.dropIndexEntries(txn, spec, key); err != nil {
			return err
		}
		if err := txn.Set(recordKey(table, key), record); err != nil {
			return err
		}
		return d.writeIndexEntries(txn, spec, key, record)
	})
	if err != nil {
		return &WriteError{Table: table, Err: err}
	}
	return nil
}

// Get returns the record stored under key, or ErrNotFound. Absence is
// not an engine failure and is never wrapped in a ReadError.
func (d *DB) Get(table, key string) ([]byte, error) {
	if _, err := d.table(table); err != nil {
		return nil, err
	}
	if d.db == nil {
		return nil, &ReadError{Table: table, Err: ErrClosed}
	}

	var out []byte
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(table, key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &ReadError{Table: table, Err: err}
	}
	return out, nil
}

// GetAll returns every record in the table, unordered.
func (d *DB) GetAll(table string) ([][]byte, error) {
	return d.GetAllPrefix(table, "")
}

// GetAllPrefix returns every record whose key starts with prefix.
// Profile-scoped tables use this for native partition reads.
func (d *DB) GetAllPrefix(table, prefix string) ([][]byte, error) {
	if _, err := d.table(table); err != nil {
		return nil, err
	}
	if d.db == nil {
		return nil, &ReadError{Table: table, Err: ErrClosed}
	}

	var out [][]byte
	scan := recordKey(table, prefix)
	err := d.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(scan); it.ValidForPrefix(scan); it.Next() {
			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			out = append(out, val)
		}
		return nil
	})
	if err != nil {
		return nil, &ReadError{Table: table, Err: err}
	}
	return out, nil
}

// GetByIndex returns the records whose indexed field equals value.
func (d *DB) GetByIndex(table, index, value string) ([][]byte, error) {
	spec, err := d.table(table)
	if err != nil {
		return nil, err
	}
	found := false
	for _, idx := range spec.Indexes {
		if idx.Name == index {
			found = true
			break
		}
	}
	if !found {
		return nil, &ReadError{Table: table, Err: fmt.Errorf("no index %q", index)}
	}
	if d.db == nil {
		return nil, &ReadError{Table: table, Err: ErrClosed}
	}

	var out [][]byte
	scan := indexPrefix(table, index, value)
	err = d.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(scan); it.ValidForPrefix(scan); it.Next() {
			ref, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			item, err := txn.Get(recordKey(table, string(ref)))
			if err == badger.ErrKeyNotFound {
				continue
			}
			if err != nil {
				return err
			}
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			out = append(out, val)
		}
		return nil
	})
	if err != nil {
		return nil, &ReadError{Table: table, Err: err}
	}
	return out, nil
}

// Delete removes a record and its index entries. Deleting an absent
// key is not an error.
func (d *DB) Delete(table, key string) error {
	spec, err := d.table(table)
	if err != nil {
		return err
	}
	if d.db == nil {
		return &WriteError{Table: table, Err: ErrClosed}
	}

	err = d.db.Update(func(txn *badger.Txn) error {
		if err := d.dropIndexEntries(txn, spec, key); err != nil {
			return err
		}
		return txn.Delete(recordKey(table, key))
	})
	if err != nil {
		return &WriteError{Table: table, Err: err}
	}
	return nil
}

// Clear removes every record in the table.
func (d *DB) Clear(table string) error {
	return d.ClearPrefix(table, "")
}

// ClearPrefix removes every record whose key starts with prefix,
// giving profile-scoped tables a native partition delete.
func (d *DB) ClearPrefix(table, prefix string) error {
	spec, err := d.table(table)
	if err != nil {
		return err
	}
	if d.db == nil {
		return &WriteError{Table: table, Err: ErrClosed}
	}

	scan := recordKey(table, prefix)
	err = d.db.Update(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{PrefetchValues: false})
		var keys []string
		for it.Seek(scan); it.ValidForPrefix(scan); it.Next() {
			full := string(it.Item().KeyCopy(nil))
			keys = append(keys, strings.TrimPrefix(full, string(recordKey(table, ""))))
		}
		it.Close()

		for _, key := range keys {
			if err := d.dropIndexEntries(txn, spec, key); err != nil {
				return err
			}
			if err := txn.Delete(recordKey(table, key)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &WriteError{Table: table, Err: err}
	}
	return nil
}

func (d *DB) table(name string) (TableSpec, error) {
	spec, ok := d.tables[name]
	if !ok {
		return TableSpec{}, fmt.Errorf("%w: %s", ErrUnknownTable, name)
	}
	return spec, nil
}

// writeIndexEntries creates one index entry per declared index whose
// field is present in the record.
func (d *DB) writeIndexEntries(txn *badger.Txn, spec TableSpec, key string, record []byte) error {
	if len(spec.Indexes) == 0 {
		return nil
	}
	fields, err := recordFields(record)
	if err != nil {
		return fmt.Errorf("index extraction: %w", err)
	}
	for _, idx := range spec.Indexes {
		val, ok := fields[idx.KeyField]
		if !ok {
			continue
		}
		entry := append(indexPrefix(spec.Name, idx.Name, val), []byte(key)...)
		if err := txn.Set(entry, []byte(key)); err != nil {
			return err
		}
	}
	return nil
}

// dropIndexEntries removes the index entries belonging to the record
// currently stored under key, if any.
func (d *DB) dropIndexEntries(txn *badger.Txn, spec TableSpec, key string) error {
	if len(spec.Indexes) == 0 {
		return nil
	}
	item, err := txn.Get(recordKey(spec.Name, key))
	if err == badger.ErrKeyNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	old, err := item.ValueCopy(nil)
	if err != nil {
		return err
	}
	fields, err := recordFields(old)
	if err != nil {
		// Unindexable old value, nothing to drop.
		return nil
	}
	for _, idx := range spec.Indexes {
		val, ok := fields[idx.KeyField]
		if !ok {
			continue
		}
		entry := append(indexPrefix(spec.Name, idx.Name, val), []byte(key)...)
		if err := txn.Delete(entry); err != nil {
			return err
		}
	}
	return nil
}

// recordFields flattens a JSON object's top-level scalar fields to
// strings for index keys. json.Number keeps integer IDs exact.
func recordFields(record []byte) (map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(record))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		switch val := v.(type) {
		case string:
			out[k] = val
		case json.Number:
			out[k] = val.String()
		case bool:
			if val {
				out[k] = "true"
			} else {
				out[k] = "false"
			}
		}
	}
	return out, nil
}

func recordKey(table, key string) []byte {
	return []byte("t/" + table + "/" + key)
}

func indexPrefix(table, index, value string) []byte {
	return []byte("i/" + table + "/" + index + "/" + value + "/")
}
