/*
Package definition decodes YAML or JSON documents into abacus symbols.

A document lists symbols and, optionally, which of them to resolve:

	symbols:
	  - name: turnover
	    namespace: quote
	    expr: {const: 150000}
	  - name: premium
	    expr:
	      lookup:
	        path: bands.csv
	        filters:
	          - range: {min: min, max: max, value: {symbol: {name: turnover, namespace: quote}}}
	        columns: [premium]
	outputs: [premium]

Expressions are mappings with a single key naming the node form:

	const: <any value>
	symbol: name | {name, namespace}
	infix: {left, op, right}
	unary: {op, operand}
	typed: {type, source}               # number, string, boolean, list(<t>), dict(<t>)
	lookup: {path, delimiter, header, filters, columns, aggregate, aggregate_column}

A bare scalar where an expression is expected is a constant, so
{infix: {left: 1, op: "+", right: 2}} needs no const wrappers. Lookup
filters are exact {column, value}, range {min, max, value} or
compare {column, op, value}, with values that are themselves expressions.
A lookup's header defaults to true.

Numbers are decoded from their source text, so 0.1 stays exactly 0.1.
Every decoding failure is an *Error naming the document path and line.
*/
package definition
