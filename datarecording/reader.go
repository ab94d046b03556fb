package datarecording

import (
	"context"
	"database/sql"
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// QueryParams narrows the rows returned by a query.
type QueryParams struct {
	// Where is a condition without the WHERE keyword, e.g. "Kind = ?".
	Where string
	Args  []any

	// OrderBy is a sort order without the ORDER BY keywords.
	OrderBy string

	// Limit caps the number of rows. Zero means all rows.
	Limit int
}

func (p QueryParams) sql(tableName string) string {
	var b strings.Builder

	b.WriteString("SELECT * FROM ")
	b.WriteString(tableName)

	if p.Where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(p.Where)
	}

	if p.OrderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(p.OrderBy)
	}

	if p.Limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(p.Limit))
	}

	return b.String()
}

// Reader reads back the tables written by a Recorder.
type Reader interface {
	// MapTable declares the struct type of the rows of a table. Tables must
	// be mapped before they are queried.
	MapTable(tableName string, sampleEntry any)

	// Query returns a pointer to a new struct for each matching row.
	Query(ctx context.Context, tableName string, params QueryParams) (
		[]any,
		error,
	)

	Close() error
}

// NewReader opens a database file written by a Recorder.
func NewReader(filename string) (Reader, error) {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", filename)
	}

	return NewReaderWithDB(db), nil
}

// NewReaderWithDB creates a Reader over an open database.
func NewReaderWithDB(db *sql.DB) Reader {
	return &sqliteReader{
		db:    db,
		types: make(map[string]reflect.Type),
	}
}

type sqliteReader struct {
	db    *sql.DB
	types map[string]reflect.Type
}

func (r *sqliteReader) MapTable(tableName string, sampleEntry any) {
	r.types[tableName] = reflect.TypeOf(sampleEntry)
}

func (r *sqliteReader) Query(
	ctx context.Context,
	tableName string,
	params QueryParams,
) ([]any, error) {
	entryType, mapped := r.types[tableName]
	if !mapped {
		return nil, errors.Errorf("table %s is not mapped", tableName)
	}

	rows, err := r.db.QueryContext(ctx, params.sql(tableName), params.Args...)
	if err != nil {
		return nil, errors.Wrapf(err, "querying %s", tableName)
	}
	defer rows.Close()

	return scanInto(rows, entryType)
}

// scanInto fills one struct per row, matching columns to fields by name.
// Columns without a field are skipped.
func scanInto(rows *sql.Rows, entryType reflect.Type) ([]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var (
		results []any
		skip    any
	)

	for rows.Next() {
		entry := reflect.New(entryType)
		targets := make([]any, len(columns))

		for i, col := range columns {
			targets[i] = &skip

			if f := entry.Elem().FieldByName(col); f.IsValid() && f.CanSet() {
				targets[i] = f.Addr().Interface()
			}
		}

		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}

		results = append(results, entry.Interface())
	}

	return results, rows.Err()
}

func (r *sqliteReader) Close() error {
	return r.db.Close()
}
