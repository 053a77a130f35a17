package rowsource

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	abserrors "github.com/randalmurphal/abacus/pkg/abacus/errors"
)

// CSV opens delimited text files. Rows are read one at a time; the file is
// never loaded whole.
type CSV struct {
	// BaseDir resolves relative paths. Empty means the working directory.
	BaseDir string
}

// Open implements Opener.
func (c *CSV) Open(_ context.Context, spec Spec) (Iterator, error) {
	path := resolvePath(c.BaseDir, strings.TrimPrefix(spec.Path, "file://"))

	f, err := os.Open(path)
	if err != nil {
		return nil, openError(spec.Path, err)
	}
	it, err := newCSVIterator(f, spec)
	if err != nil {
		return nil, err
	}
	return it, nil
}

// NewReaderIterator reads delimited text from r. Closing the iterator closes
// r if it is an io.Closer.
func NewReaderIterator(r io.Reader, spec Spec) (Iterator, error) {
	it, err := newCSVIterator(r, spec)
	if err != nil {
		return nil, err
	}
	return it, nil
}

func newCSVIterator(r io.Reader, spec Spec) (*csvIterator, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.Comma = spec.Delimiter
	if reader.Comma == 0 {
		reader.Comma = ','
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	it := &csvIterator{path: spec.Path, reader: reader, closer: r}
	if !spec.HasHeader {
		return it, nil
	}

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		it.done = true
		return it, nil
	}
	if err != nil {
		_ = it.Close()
		return nil, &abserrors.SourceError{Path: spec.Path, Op: "read", Err: err}
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	it.header = header
	return it, nil
}

type csvIterator struct {
	path   string
	reader *csv.Reader
	closer io.Reader
	header []string
	done   bool
}

func (it *csvIterator) Next() (Row, error) {
	if it.done {
		return Row{}, io.EOF
	}
	record, err := it.reader.Read()
	if errors.Is(err, io.EOF) {
		it.done = true
		return Row{}, io.EOF
	}
	if err != nil {
		return Row{}, &abserrors.SourceError{Path: it.path, Op: "read", Err: err}
	}
	if it.header == nil {
		return PositionalRow(record), nil
	}
	return NewRow(it.header, record), nil
}

func (it *csvIterator) Close() error {
	it.done = true
	if c, ok := it.closer.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func resolvePath(baseDir, path string) string {
	if baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

func openError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		err = fmt.Errorf("%w: %w", abserrors.ErrSourceNotFound, err)
	}
	return &abserrors.SourceError{Path: path, Op: "open", Err: err}
}
