package definition

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/abacus/pkg/abacus"
	"github.com/randalmurphal/abacus/pkg/abacus/lookup"
	"github.com/randalmurphal/abacus/pkg/abacus/types"
	"github.com/randalmurphal/abacus/pkg/abacus/value"
)

type decoder struct {
	types *types.Registry
}

func malformed(n *yaml.Node, path, format string, args ...any) error {
	line := 0
	if n != nil {
		line = n.Line
	}
	return &Error{Path: path, Line: line, Err: fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))}
}

func wrap(n *yaml.Node, path string, err error) error {
	return &Error{Path: path, Line: n.Line, Err: err}
}

func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// fields returns the values of mapping n by key. Keys outside allowed and
// keys in required but missing are errors.
func fields(n *yaml.Node, path string, allowed []string, required ...string) (map[string]*yaml.Node, error) {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil, malformed(n, path, "expected a mapping")
	}
	out := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		if !contains(allowed, key) {
			return nil, malformed(n.Content[i], path, "unknown field %q", key)
		}
		if _, dup := out[key]; dup {
			return nil, malformed(n.Content[i], path, "duplicate field %q", key)
		}
		out[key] = deref(n.Content[i+1])
	}
	for _, key := range required {
		if _, ok := out[key]; !ok {
			return nil, malformed(n, path, "missing field %q", key)
		}
	}
	return out, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

func str(n *yaml.Node, path string) (string, error) {
	if n.Kind != yaml.ScalarNode || isNull(n) {
		return "", malformed(n, path, "expected a string")
	}
	return n.Value, nil
}

func strOrList(n *yaml.Node, path string) ([]string, error) {
	if n.Kind == yaml.ScalarNode {
		s, err := str(n, path)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, malformed(n, path, "expected a string or a list of strings")
	}
	out := make([]string, 0, len(n.Content))
	for i, item := range n.Content {
		s, err := str(deref(item), fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (d *decoder) document(n *yaml.Node) (*Document, error) {
	top, err := fields(n, "$", []string{"symbols", "outputs"}, "symbols")
	if err != nil {
		return nil, err
	}

	doc := &Document{Symbols: abacus.NewSymbolRegistry()}
	syms := top["symbols"]
	if syms.Kind != yaml.SequenceNode {
		return nil, malformed(syms, "symbols", "expected a list")
	}
	for i, item := range syms.Content {
		if err := d.symbol(doc.Symbols, deref(item), fmt.Sprintf("symbols[%d]", i)); err != nil {
			return nil, err
		}
	}

	outputs, ok := top["outputs"]
	if !ok {
		for _, key := range doc.Symbols.Names() {
			doc.Outputs = append(doc.Outputs, ParseSymbolRef(key))
		}
		return doc, nil
	}
	refs, err := strOrList(outputs, "outputs")
	if err != nil {
		return nil, err
	}
	for _, ref := range refs {
		doc.Outputs = append(doc.Outputs, ParseSymbolRef(ref))
	}
	return doc, nil
}

func (d *decoder) symbol(reg *abacus.SymbolRegistry, n *yaml.Node, path string) error {
	f, err := fields(n, path, []string{"name", "namespace", "expr"}, "name", "expr")
	if err != nil {
		return err
	}
	name, err := str(f["name"], path+".name")
	if err != nil {
		return err
	}
	if name == "" || strings.Contains(name, ".") {
		return malformed(f["name"], path+".name", "symbol names must be non-empty and contain no dots")
	}
	var namespace string
	if ns, ok := f["namespace"]; ok {
		if namespace, err = str(ns, path+".namespace"); err != nil {
			return err
		}
	}
	if reg.Has(namespace, name) {
		return malformed(n, path, "symbol %q defined twice", abacus.Symbol{Name: name, Namespace: namespace}.Key())
	}

	expr, err := d.node(f["expr"], path+".expr")
	if err != nil {
		return err
	}
	reg.DefineIn(namespace, name, expr)
	return nil
}

// node decodes one expression. A scalar is a constant; anything else is a
// mapping with exactly one key naming the node form.
func (d *decoder) node(n *yaml.Node, path string) (abacus.Node, error) {
	n = deref(n)
	if n.Kind == yaml.ScalarNode {
		v, err := scalar(n, path)
		if err != nil {
			return nil, err
		}
		return abacus.Constant{Value: v}, nil
	}
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return nil, malformed(n, path, "expected a mapping with one of const, symbol, infix, unary, typed, lookup")
	}

	form, body := n.Content[0].Value, deref(n.Content[1])
	path = path + "." + form
	switch form {
	case "const":
		v, err := d.value(body, path)
		if err != nil {
			return nil, err
		}
		return abacus.Constant{Value: v}, nil
	case "symbol":
		return d.symbolRef(body, path)
	case "infix":
		return d.infix(body, path)
	case "unary":
		return d.unary(body, path)
	case "typed":
		return d.typed(body, path)
	case "lookup":
		return d.lookup(body, path)
	}
	return nil, malformed(n.Content[0], path, "unknown node form %q", form)
}

func (d *decoder) symbolRef(n *yaml.Node, path string) (abacus.Node, error) {
	if n.Kind == yaml.ScalarNode {
		name, err := str(n, path)
		if err != nil {
			return nil, err
		}
		return abacus.Symbol{Name: name}, nil
	}
	f, err := fields(n, path, []string{"name", "namespace"}, "name")
	if err != nil {
		return nil, err
	}
	var sym abacus.Symbol
	if sym.Name, err = str(f["name"], path+".name"); err != nil {
		return nil, err
	}
	if ns, ok := f["namespace"]; ok {
		if sym.Namespace, err = str(ns, path+".namespace"); err != nil {
			return nil, err
		}
	}
	return sym, nil
}

func (d *decoder) infix(n *yaml.Node, path string) (abacus.Node, error) {
	f, err := fields(n, path, []string{"left", "op", "right"}, "left", "op", "right")
	if err != nil {
		return nil, err
	}
	var node abacus.Infix
	if node.Operator, err = str(f["op"], path+".op"); err != nil {
		return nil, err
	}
	if node.Left, err = d.node(f["left"], path+".left"); err != nil {
		return nil, err
	}
	if node.Right, err = d.node(f["right"], path+".right"); err != nil {
		return nil, err
	}
	return node, nil
}

func (d *decoder) unary(n *yaml.Node, path string) (abacus.Node, error) {
	f, err := fields(n, path, []string{"op", "operand"}, "op", "operand")
	if err != nil {
		return nil, err
	}
	var node abacus.Unary
	if node.Operator, err = str(f["op"], path+".op"); err != nil {
		return nil, err
	}
	if node.Operand, err = d.node(f["operand"], path+".operand"); err != nil {
		return nil, err
	}
	return node, nil
}

func (d *decoder) typed(n *yaml.Node, path string) (abacus.Node, error) {
	f, err := fields(n, path, []string{"type", "source"}, "type", "source")
	if err != nil {
		return nil, err
	}
	name, err := str(f["type"], path+".type")
	if err != nil {
		return nil, err
	}
	t, err := d.types.Lookup(name)
	if err != nil {
		return nil, wrap(f["type"], path+".type", err)
	}
	source, err := d.node(f["source"], path+".source")
	if err != nil {
		return nil, err
	}
	return abacus.Typed{Type: t, Source: source}, nil
}

var lookupFields = []string{"path", "delimiter", "header", "filters", "columns", "aggregate", "aggregate_column"}

func (d *decoder) lookup(n *yaml.Node, path string) (abacus.Node, error) {
	f, err := fields(n, path, lookupFields, "path")
	if err != nil {
		return nil, err
	}
	node := abacus.Lookup{HasHeader: true}
	if node.Path, err = str(f["path"], path+".path"); err != nil {
		return nil, err
	}
	if v, ok := f["delimiter"]; ok {
		if node.Delimiter, err = str(v, path+".delimiter"); err != nil {
			return nil, err
		}
	}
	if v, ok := f["header"]; ok {
		b, err := strconv.ParseBool(v.Value)
		if err != nil || v.Kind != yaml.ScalarNode {
			return nil, malformed(v, path+".header", "expected true or false")
		}
		node.HasHeader = b
	}
	if v, ok := f["columns"]; ok {
		if node.Columns, err = strOrList(v, path+".columns"); err != nil {
			return nil, err
		}
	}
	if v, ok := f["aggregate"]; ok {
		tag, err := str(v, path+".aggregate")
		if err != nil {
			return nil, err
		}
		if node.Aggregate, err = lookup.ParseAggregate(tag); err != nil {
			return nil, wrap(v, path+".aggregate", err)
		}
	}
	if v, ok := f["aggregate_column"]; ok {
		if node.AggregateColumn, err = str(v, path+".aggregate_column"); err != nil {
			return nil, err
		}
	}
	if v, ok := f["filters"]; ok {
		if v.Kind != yaml.SequenceNode {
			return nil, malformed(v, path+".filters", "expected a list")
		}
		for i, item := range v.Content {
			filter, err := d.filter(deref(item), fmt.Sprintf("%s.filters[%d]", path, i))
			if err != nil {
				return nil, err
			}
			node.Filters = append(node.Filters, filter)
		}
	}
	return node, nil
}

func (d *decoder) filter(n *yaml.Node, path string) (abacus.Filter, error) {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return nil, malformed(n, path, "expected a mapping with one of exact, range, compare")
	}
	form, body := n.Content[0].Value, deref(n.Content[1])
	path = path + "." + form

	switch form {
	case "exact":
		f, err := fields(body, path, []string{"column", "value"}, "column", "value")
		if err != nil {
			return nil, err
		}
		var filter abacus.ExactFilter
		if filter.Column, err = str(f["column"], path+".column"); err != nil {
			return nil, err
		}
		if filter.Value, err = d.node(f["value"], path+".value"); err != nil {
			return nil, err
		}
		return filter, nil
	case "range":
		f, err := fields(body, path, []string{"min", "max", "value"}, "min", "max", "value")
		if err != nil {
			return nil, err
		}
		var filter abacus.RangeFilter
		if filter.MinColumn, err = str(f["min"], path+".min"); err != nil {
			return nil, err
		}
		if filter.MaxColumn, err = str(f["max"], path+".max"); err != nil {
			return nil, err
		}
		if filter.Value, err = d.node(f["value"], path+".value"); err != nil {
			return nil, err
		}
		return filter, nil
	case "compare":
		f, err := fields(body, path, []string{"column", "op", "value"}, "column", "op", "value")
		if err != nil {
			return nil, err
		}
		var filter abacus.CompareFilter
		if filter.Column, err = str(f["column"], path+".column"); err != nil {
			return nil, err
		}
		if filter.Operator, err = str(f["op"], path+".op"); err != nil {
			return nil, err
		}
		if filter.Value, err = d.node(f["value"], path+".value"); err != nil {
			return nil, err
		}
		return filter, nil
	}
	return nil, malformed(n.Content[0], path, "unknown filter form %q", form)
}

// value decodes any YAML node into a Value. Mappings keep their key order.
func (d *decoder) value(n *yaml.Node, path string) (value.Value, error) {
	n = deref(n)
	switch n.Kind {
	case yaml.ScalarNode:
		return scalar(n, path)
	case yaml.SequenceNode:
		items := make([]value.Value, 0, len(n.Content))
		for i, item := range n.Content {
			v, err := d.value(item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return value.Null, err
			}
			items = append(items, v)
		}
		return value.List(items...), nil
	case yaml.MappingNode:
		dict := value.NewDict()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			v, err := d.value(n.Content[i+1], path+"."+key)
			if err != nil {
				return value.Null, err
			}
			dict.Set(key, v)
		}
		return value.FromDict(dict), nil
	}
	return value.Null, malformed(n, path, "unsupported value")
}

// scalar keeps numbers exact by parsing their source text rather than a
// float64.
func scalar(n *yaml.Node, path string) (value.Value, error) {
	switch n.Tag {
	case "!!null":
		return value.Null, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return value.Null, wrap(n, path, err)
		}
		return value.Bool(b), nil
	case "!!int", "!!float":
		if d, ok := value.ParseNumber(strings.ReplaceAll(n.Value, "_", "")); ok {
			return value.Number(d), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return value.Null, wrap(n, path, err)
		}
		v, err := value.FromAny(f)
		if err != nil {
			return value.Null, malformed(n, path, "%v", err)
		}
		return v, nil
	}
	return value.String(n.Value), nil
}
