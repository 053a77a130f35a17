package rowsource

import "strconv"

// Row is one record from a row source. Cells are addressed by column name,
// or by zero-based position ("0", "1", ...) when the source has no header.
type Row struct {
	columns []string
	values  []string
}

// NewRow pairs columns with values. Values beyond the last column are
// dropped; columns beyond the last value are missing from the row.
func NewRow(columns, values []string) Row {
	n := min(len(columns), len(values))
	return Row{columns: columns[:n], values: values[:n]}
}

// PositionalRow keys values by their position.
func PositionalRow(values []string) Row {
	return Row{columns: positions(len(values)), values: values}
}

// Get returns the cell for column.
func (r Row) Get(column string) (string, bool) {
	for i, c := range r.columns {
		if c == column {
			return r.values[i], true
		}
	}
	return "", false
}

// Columns returns the column names in source order.
func (r Row) Columns() []string {
	return r.columns
}

// Len returns the number of cells.
func (r Row) Len() int {
	return len(r.values)
}

// Range calls fn for each cell in source order until fn returns false.
func (r Row) Range(fn func(column, cell string) bool) {
	for i, c := range r.columns {
		if !fn(c, r.values[i]) {
			return
		}
	}
}

var positionCache = positionsUncached(32)

func positions(n int) []string {
	if n <= len(positionCache) {
		return positionCache[:n:n]
	}
	return positionsUncached(n)
}

func positionsUncached(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}
	return out
}
