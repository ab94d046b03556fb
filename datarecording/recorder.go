// Package datarecording stores built topologies in SQLite databases.
package datarecording

import (
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/fatih/structs"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	// Registers the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"
)

// Recorder writes rows of flat structs into tables. Rows are buffered until
// Flush or Close.
type Recorder interface {
	// CreateTable creates a table whose columns are the exported fields of
	// the sample entry.
	CreateTable(tableName string, sampleEntry any) error

	// InsertData buffers a row. The entry must have the type of the sample
	// entry the table was created with.
	InsertData(tableName string, entry any) error

	// ListTables returns the names of the tables, sorted.
	ListTables() []string

	// Flush writes the buffered rows in a single transaction.
	Flush() error

	// Close flushes and closes the database.
	Close() error
}

// New creates a Recorder that writes to the file path + ".sqlite3". A unique
// name is generated if path is empty. The file must not exist yet.
func New(path string) (Recorder, error) {
	if path == "" {
		path = "memhier_topology_" + xid.New().String()
	}

	filename := path + ".sqlite3"
	if _, err := os.Stat(filename); err == nil {
		return nil, errors.Errorf("%s already exists", filename)
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", filename)
	}

	return NewWithDB(db), nil
}

// NewWithDB creates a Recorder over an open database. Buffered rows are
// flushed if the process exits through atexit.
func NewWithDB(db *sql.DB) Recorder {
	r := &sqliteRecorder{
		db:     db,
		tables: make(map[string]*table),
	}

	atexit.Register(func() { _ = r.Flush() })

	return r
}

type table struct {
	entryType reflect.Type
	pending   []any
}

type sqliteRecorder struct {
	db     *sql.DB
	tables map[string]*table
}

func columnType(kind reflect.Kind) (string, bool) {
	switch kind {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64:
		return "INTEGER", true
	case reflect.Float32, reflect.Float64:
		return "REAL", true
	case reflect.String:
		return "TEXT", true
	default:
		return "", false
	}
}

func columnDefs(sampleEntry any) ([]string, error) {
	if !structs.IsStruct(sampleEntry) {
		return nil, errors.Errorf("entry of type %T is not a struct",
			sampleEntry)
	}

	var defs []string

	for _, f := range structs.Fields(sampleEntry) {
		if !f.IsExported() {
			return nil, errors.Errorf("field %s is not exported", f.Name())
		}

		colType, ok := columnType(f.Kind())
		if !ok {
			return nil, errors.Errorf("field %s of kind %s cannot be stored",
				f.Name(), f.Kind())
		}

		defs = append(defs, f.Name()+" "+colType)
	}

	return defs, nil
}

func (r *sqliteRecorder) CreateTable(tableName string, sampleEntry any) error {
	if _, exists := r.tables[tableName]; exists {
		return errors.Errorf("table %s already exists", tableName)
	}

	defs, err := columnDefs(sampleEntry)
	if err != nil {
		return errors.Wrapf(err, "creating table %s", tableName)
	}

	stmt := fmt.Sprintf("CREATE TABLE %s (%s)",
		tableName, strings.Join(defs, ", "))
	if _, err := r.db.Exec(stmt); err != nil {
		return errors.Wrapf(err, "creating table %s", tableName)
	}

	r.tables[tableName] = &table{entryType: reflect.TypeOf(sampleEntry)}

	return nil
}

func (r *sqliteRecorder) InsertData(tableName string, entry any) error {
	t, exists := r.tables[tableName]
	if !exists {
		return errors.Errorf("table %s does not exist", tableName)
	}

	if reflect.TypeOf(entry) != t.entryType {
		return errors.Errorf("entry of type %T does not fit table %s",
			entry, tableName)
	}

	t.pending = append(t.pending, entry)

	return nil
}

func (r *sqliteRecorder) ListTables() []string {
	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func (r *sqliteRecorder) Flush() (err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return errors.Wrap(err, "starting transaction")
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, name := range r.ListTables() {
		if err := insertRows(tx, name, r.tables[name].pending); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "committing rows")
	}

	for _, t := range r.tables {
		t.pending = nil
	}

	return nil
}

func insertRows(tx *sql.Tx, tableName string, rows []any) error {
	if len(rows) == 0 {
		return nil
	}

	numCols := len(structs.Names(rows[0]))
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", numCols), ", ")

	stmt, err := tx.Prepare(
		fmt.Sprintf("INSERT INTO %s VALUES (%s)", tableName, placeholders))
	if err != nil {
		return errors.Wrapf(err, "preparing insert into %s", tableName)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.Exec(structs.Values(row)...); err != nil {
			return errors.Wrapf(err, "inserting into %s", tableName)
		}
	}

	return nil
}

func (r *sqliteRecorder) Close() error {
	if err := r.Flush(); err != nil {
		return err
	}

	return r.db.Close()
}
