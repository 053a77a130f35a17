/*
Package lookup runs filtered, aggregated queries over row sources.

A Query names a row source, a set of matchers, the output columns and an
aggregate. Execute streams the source exactly once, one row at a time:

	engine := lookup.New(rowsource.Default("tables"))
	res := engine.Execute(ctx, lookup.Query{
	    Source:   rowsource.Spec{Path: "bands.csv", HasHeader: true},
	    Matchers: []lookup.Matcher{lookup.Range{MinColumn: "min", MaxColumn: "max", Value: value.Int(150000)}},
	    Columns:  []string{"premium"},
	})

# Matchers

Exact compares a cell to a string. Range tests the half-open band
[min, max): a value sitting on a band edge belongs to the band that starts
there. Compare applies an operator from the operators chain to the cell.

# Aggregates

	first    first matching row; the scan stops at the first match
	last     last matching row
	count    number of matches
	sum      sum of the numeric cells of the aggregate column
	average  mean of the numeric cells of the aggregate column ("avg" too)
	min/max  row with the smallest/largest aggregate cell; ties keep the earliest

No matching rows is Absent for every aggregate. A sum over matches whose
cells are all zero or non-numeric is a present 0.

Sum, average, min and max need an aggregate column. When none is given and
exactly one output column is requested, that column is used.
*/
package lookup
