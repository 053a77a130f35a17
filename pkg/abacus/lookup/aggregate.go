package lookup

import (
	"github.com/shopspring/decimal"

	"github.com/randalmurphal/abacus/pkg/abacus/rowsource"
	"github.com/randalmurphal/abacus/pkg/abacus/value"
)

// aggregator folds matched rows one at a time. add reports whether the scan
// can stop.
type aggregator interface {
	add(row rowsource.Row) (stop bool)
	result(project projector) value.Result
}

type projector func(rowsource.Row) value.Result

func newAggregator(a Aggregate, column string) aggregator {
	switch a {
	case Last:
		return &lastAggregator{}
	case Count:
		return &countAggregator{}
	case Sum:
		return &sumAggregator{column: column}
	case Average:
		return &averageAggregator{column: column}
	case Min:
		return &extremeAggregator{column: column, want: -1}
	case Max:
		return &extremeAggregator{column: column, want: 1}
	default:
		return &firstAggregator{}
	}
}

type firstAggregator struct {
	row   rowsource.Row
	found bool
}

func (a *firstAggregator) add(row rowsource.Row) bool {
	a.row, a.found = row, true
	return true
}

func (a *firstAggregator) result(project projector) value.Result {
	if !a.found {
		return value.Absent()
	}
	return project(a.row)
}

type lastAggregator struct {
	row   rowsource.Row
	found bool
}

func (a *lastAggregator) add(row rowsource.Row) bool {
	a.row, a.found = row, true
	return false
}

func (a *lastAggregator) result(project projector) value.Result {
	if !a.found {
		return value.Absent()
	}
	return project(a.row)
}

type countAggregator struct {
	n int64
}

func (a *countAggregator) add(rowsource.Row) bool {
	a.n++
	return false
}

func (a *countAggregator) result(projector) value.Result {
	if a.n == 0 {
		return value.Absent()
	}
	return value.Ok(value.Int(a.n))
}

// sumAggregator skips non-numeric cells. A match with only skipped cells
// still sums to a present zero.
type sumAggregator struct {
	column  string
	sum     decimal.Decimal
	matched bool
}

func (a *sumAggregator) add(row rowsource.Row) bool {
	a.matched = true
	if n, ok := numericCell(row, a.column); ok {
		a.sum = a.sum.Add(n)
	}
	return false
}

func (a *sumAggregator) result(projector) value.Result {
	if !a.matched {
		return value.Absent()
	}
	return value.Ok(value.Number(a.sum))
}

type averageAggregator struct {
	column string
	sum    decimal.Decimal
	n      int64
}

func (a *averageAggregator) add(row rowsource.Row) bool {
	if n, ok := numericCell(row, a.column); ok {
		a.sum = a.sum.Add(n)
		a.n++
	}
	return false
}

func (a *averageAggregator) result(projector) value.Result {
	if a.n == 0 {
		return value.Absent()
	}
	return value.Ok(value.Number(a.sum.Div(decimal.NewFromInt(a.n))))
}

// extremeAggregator keeps the row with the smallest (want -1) or largest
// (want 1) numeric cell. Ties keep the earliest row. Rows whose cell is
// missing or not numeric are skipped.
type extremeAggregator struct {
	column string
	want   int
	row    rowsource.Row
	best   decimal.Decimal
	found  bool
}

func (a *extremeAggregator) add(row rowsource.Row) bool {
	d, ok := numericCell(row, a.column)
	if !ok {
		return false
	}
	if !a.found || d.Cmp(a.best) == a.want {
		a.row, a.best, a.found = row, d, true
	}
	return false
}

func (a *extremeAggregator) result(project projector) value.Result {
	if !a.found {
		return value.Absent()
	}
	return project(a.row)
}

func numericCell(row rowsource.Row, column string) (decimal.Decimal, bool) {
	cell, ok := row.Get(column)
	if !ok {
		return decimal.Decimal{}, false
	}
	return value.ParseNumber(cell)
}

// projectColumns builds the projector for the requested columns.
func projectColumns(columns []string) projector {
	switch len(columns) {
	case 0:
		return func(row rowsource.Row) value.Result {
			d := value.NewDict()
			row.Range(func(column, cell string) bool {
				d.Set(column, value.String(cell))
				return true
			})
			return value.Ok(value.FromDict(d))
		}
	case 1:
		column := columns[0]
		return func(row rowsource.Row) value.Result {
			cell, ok := row.Get(column)
			if !ok {
				return value.Absent()
			}
			return value.Ok(value.String(cell))
		}
	default:
		return func(row rowsource.Row) value.Result {
			d := value.NewDict()
			for _, column := range columns {
				if cell, ok := row.Get(column); ok {
					d.Set(column, value.String(cell))
				} else {
					d.Set(column, value.Null)
				}
			}
			return value.Ok(value.FromDict(d))
		}
	}
}
