package rowsource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	abserrors "github.com/randalmurphal/abacus/pkg/abacus/errors"
)

// ErrMissingTable indicates a sqlite:// path without a table parameter.
var ErrMissingTable = errors.New("sqlite source requires a table parameter")

// SQLite streams rows from a table in a SQLite database. Paths have the form
// "sqlite://<file>?table=<name>". Every cell is read as text, so lookups
// treat database rows exactly like delimited text rows.
type SQLite struct {
	// BaseDir resolves relative database paths.
	BaseDir string
}

// Open implements Opener.
func (s *SQLite) Open(ctx context.Context, spec Spec) (Iterator, error) {
	file, table, err := parseSQLitePath(spec.Path)
	if err != nil {
		return nil, &abserrors.SourceError{Path: spec.Path, Op: "open", Err: err}
	}
	file = resolvePath(s.BaseDir, file)

	// The driver creates missing files, so check first.
	if _, err := os.Stat(file); err != nil {
		return nil, openError(spec.Path, err)
	}

	db, err := sql.Open("sqlite", file)
	if err != nil {
		return nil, &abserrors.SourceError{Path: spec.Path, Op: "open", Err: err}
	}

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(table))
	if err != nil {
		db.Close()
		return nil, &abserrors.SourceError{Path: spec.Path, Op: "open", Err: err}
	}

	columns, err := rows.Columns()
	if err != nil {
		rows.Close()
		db.Close()
		return nil, &abserrors.SourceError{Path: spec.Path, Op: "open", Err: err}
	}
	it := &sqliteIterator{path: spec.Path, db: db, rows: rows, width: len(columns)}
	if spec.HasHeader {
		it.columns = columns
	}
	return it, nil
}

func parseSQLitePath(path string) (file, table string, err error) {
	rest := strings.TrimPrefix(path, "sqlite://")
	file, rawQuery, _ := strings.Cut(rest, "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", "", fmt.Errorf("parse query: %w", err)
	}
	table = query.Get("table")
	if table == "" {
		return "", "", ErrMissingTable
	}
	return file, table, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

type sqliteIterator struct {
	path    string
	db      *sql.DB
	rows    *sql.Rows
	columns []string
	width   int
	closed  bool
}

func (it *sqliteIterator) Next() (Row, error) {
	if it.closed {
		return Row{}, io.EOF
	}
	if !it.rows.Next() {
		if err := it.rows.Err(); err != nil {
			return Row{}, &abserrors.SourceError{Path: it.path, Op: "read", Err: err}
		}
		return Row{}, io.EOF
	}

	cells := make([]sql.NullString, it.width)
	dest := make([]any, len(cells))
	for i := range cells {
		dest[i] = &cells[i]
	}
	if err := it.rows.Scan(dest...); err != nil {
		return Row{}, &abserrors.SourceError{Path: it.path, Op: "read", Err: err}
	}

	values := make([]string, len(cells))
	for i, c := range cells {
		values[i] = c.String
	}
	if it.columns == nil {
		return PositionalRow(values), nil
	}
	return NewRow(it.columns, values), nil
}

func (it *sqliteIterator) Close() error {
	if it.closed {
		return nil
	}
	it.closed = true
	return errors.Join(it.rows.Close(), it.db.Close())
}
