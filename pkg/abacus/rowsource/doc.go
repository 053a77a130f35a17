/*
Package rowsource streams tabular rows for lookups.

An Opener turns a Spec (path, delimiter, header flag) into an Iterator that
yields one Row at a time and returns io.EOF at the end. Nothing is buffered
beyond the current row, so a lookup over a large file uses constant memory,
and a lookup that stops early never reads the rest of the source.

Built-in openers:

	CSV      delimited text through encoding/csv (CSV, TSV, any single rune)
	SQLite   "sqlite://rates.db?table=bands", read through modernc.org/sqlite
	Memory   tables held in memory, mostly for tests and embedding

Mux picks an opener by path scheme:

	src := rowsource.Default("/srv/tables")
	it, err := src.Open(ctx, rowsource.Spec{Path: "bands.csv", HasHeader: true})
	if err != nil {
	    return err
	}
	defer it.Close()

	for {
	    row, err := it.Next()
	    if errors.Is(err, io.EOF) {
	        break
	    }
	    ...
	}

Rows from a source without a header are keyed by position: "0", "1", ...
*/
package rowsource
