package rowsource

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	abserrors "github.com/randalmurphal/abacus/pkg/abacus/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// drain reads every row as a column->cell map.
func drain(t *testing.T, it Iterator) []map[string]string {
	t.Helper()
	defer it.Close()
	var out []map[string]string
	for {
		row, err := it.Next()
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err)
		m := map[string]string{}
		row.Range(func(c, v string) bool {
			m[c] = v
			return true
		})
		out = append(out, m)
	}
}

func TestRow(t *testing.T) {
	row := NewRow([]string{"a", "b", "c"}, []string{"1", "2"})
	assert.Equal(t, 2, row.Len())
	assert.Equal(t, []string{"a", "b"}, row.Columns())

	v, ok := row.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	_, ok = row.Get("c")
	assert.False(t, ok)

	pos := PositionalRow([]string{"x", "y"})
	assert.Equal(t, []string{"0", "1"}, pos.Columns())
	v, _ = pos.Get("1")
	assert.Equal(t, "y", v)

	wide := PositionalRow(make([]string, 40))
	assert.Equal(t, "39", wide.Columns()[39])
}

func TestCSV(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	writeFile(t, dir, "users.csv", "name,age,city\nAlice,30,NYC\nBob,25,LA\n")
	writeFile(t, dir, "users.tsv", "name\tage\n\"Al, Jr\"\t30\n")
	writeFile(t, dir, "bom.csv", "\ufeffname,age\nAlice,30\n")
	writeFile(t, dir, "empty.csv", "")

	src := &CSV{BaseDir: dir}

	t.Run("header", func(t *testing.T) {
		it, err := src.Open(ctx, Spec{Path: "users.csv", HasHeader: true})
		require.NoError(t, err)
		rows := drain(t, it)
		assert.Equal(t, []map[string]string{
			{"name": "Alice", "age": "30", "city": "NYC"},
			{"name": "Bob", "age": "25", "city": "LA"},
		}, rows)
	})

	t.Run("headerless", func(t *testing.T) {
		it, err := src.Open(ctx, Spec{Path: "users.csv"})
		require.NoError(t, err)
		rows := drain(t, it)
		require.Len(t, rows, 3)
		assert.Equal(t, map[string]string{"0": "name", "1": "age", "2": "city"}, rows[0])
	})

	t.Run("tab delimited", func(t *testing.T) {
		it, err := src.Open(ctx, Spec{Path: "users.tsv", Delimiter: '\t', HasHeader: true})
		require.NoError(t, err)
		assert.Equal(t, []map[string]string{{"name": "Al, Jr", "age": "30"}}, drain(t, it))
	})

	t.Run("byte order mark", func(t *testing.T) {
		it, err := src.Open(ctx, Spec{Path: "bom.csv", HasHeader: true})
		require.NoError(t, err)
		assert.Equal(t, []map[string]string{{"name": "Alice", "age": "30"}}, drain(t, it))
	})

	t.Run("empty with header", func(t *testing.T) {
		it, err := src.Open(ctx, Spec{Path: "empty.csv", HasHeader: true})
		require.NoError(t, err)
		assert.Empty(t, drain(t, it))
	})

	t.Run("absolute path and file scheme", func(t *testing.T) {
		it, err := (&CSV{}).Open(ctx, Spec{Path: "file://" + filepath.Join(dir, "users.csv"), HasHeader: true})
		require.NoError(t, err)
		assert.Len(t, drain(t, it), 2)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := src.Open(ctx, Spec{Path: "nope.csv"})
		require.Error(t, err)
		assert.ErrorIs(t, err, abserrors.ErrSourceNotFound)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.True(t, abserrors.IsIO(err))
	})
}

func TestNewReaderIterator(t *testing.T) {
	it, err := NewReaderIterator(strings.NewReader("a;b\n1;2\n"), Spec{Delimiter: ';', HasHeader: true})
	require.NoError(t, err)
	assert.Equal(t, []map[string]string{{"a": "1", "b": "2"}}, drain(t, it))
}

func TestCSV_StopsReading(t *testing.T) {
	it, err := NewReaderIterator(strings.NewReader("a\n1\n2\n"), Spec{HasHeader: true})
	require.NoError(t, err)

	_, err = it.Next()
	require.NoError(t, err)
	require.NoError(t, it.Close())

	_, err = it.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func createBandsDB(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "rates.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE bands (min INTEGER, max INTEGER, premium REAL, note TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO bands VALUES (0, 100000, 10, 'low'), (100000, 200000, 15.5, NULL)`)
	require.NoError(t, err)
	return path
}

func TestSQLite(t *testing.T) {
	dir := t.TempDir()
	createBandsDB(t, dir)
	ctx := context.Background()
	src := &SQLite{BaseDir: dir}

	t.Run("rows as text", func(t *testing.T) {
		it, err := src.Open(ctx, Spec{Path: "sqlite://rates.db?table=bands", HasHeader: true})
		require.NoError(t, err)
		assert.Equal(t, []map[string]string{
			{"min": "0", "max": "100000", "premium": "10", "note": "low"},
			{"min": "100000", "max": "200000", "premium": "15.5", "note": ""},
		}, drain(t, it))
	})

	t.Run("positional", func(t *testing.T) {
		it, err := src.Open(ctx, Spec{Path: "sqlite://rates.db?table=bands"})
		require.NoError(t, err)
		rows := drain(t, it)
		require.Len(t, rows, 2)
		assert.Equal(t, "low", rows[0]["3"])
	})

	t.Run("missing table parameter", func(t *testing.T) {
		_, err := src.Open(ctx, Spec{Path: "sqlite://rates.db"})
		assert.ErrorIs(t, err, ErrMissingTable)
	})

	t.Run("missing database", func(t *testing.T) {
		_, err := src.Open(ctx, Spec{Path: "sqlite://other.db?table=bands"})
		assert.ErrorIs(t, err, abserrors.ErrSourceNotFound)
		_, statErr := os.Stat(filepath.Join(dir, "other.db"))
		assert.True(t, os.IsNotExist(statErr), "open must not create the database")
	})

	t.Run("unknown table", func(t *testing.T) {
		_, err := src.Open(ctx, Spec{Path: "sqlite://rates.db?table=nope"})
		var srcErr *abserrors.SourceError
		assert.ErrorAs(t, err, &srcErr)
	})
}

func TestMemory(t *testing.T) {
	mem := NewMemory()
	mem.Put("t", [][]string{{"k", "v"}, {"a", "1"}})
	ctx := context.Background()

	it, err := mem.Open(ctx, Spec{Path: "t", HasHeader: true})
	require.NoError(t, err)
	assert.Equal(t, []map[string]string{{"k": "a", "v": "1"}}, drain(t, it))

	it, err = mem.Open(ctx, Spec{Path: "t"})
	require.NoError(t, err)
	assert.Len(t, drain(t, it), 2)

	_, err = mem.Open(ctx, Spec{Path: "missing"})
	assert.ErrorIs(t, err, abserrors.ErrSourceNotFound)
}

func TestMux(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	mem.Put("mem://t", [][]string{{"x"}})

	m := NewMux(nil)
	m.Handle("mem", mem)
	assert.Equal(t, []string{"mem"}, m.Schemes())

	it, err := m.Open(ctx, Spec{Path: "mem://t"})
	require.NoError(t, err)
	assert.Len(t, drain(t, it), 1)

	_, err = m.Open(ctx, Spec{Path: "s3://bucket/t.csv"})
	assert.ErrorIs(t, err, abserrors.ErrUnknownScheme)

	_, err = m.Open(ctx, Spec{Path: "plain.csv"})
	assert.ErrorIs(t, err, abserrors.ErrUnknownScheme)

	assert.Equal(t, []string{"file", "sqlite"}, Default("").Schemes())
}

func TestSplitScheme(t *testing.T) {
	tests := []struct {
		path   string
		scheme string
		ok     bool
	}{
		{"sqlite://a.db?table=t", "sqlite", true},
		{"file:///tmp/a.csv", "file", true},
		{"tables/a.csv", "", false},
		{"://x", "", false},
		{"dir/x://y", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			scheme, _, ok := SplitScheme(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.scheme, scheme)
		})
	}
}
