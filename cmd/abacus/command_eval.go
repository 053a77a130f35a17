package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/randalmurphal/abacus/pkg/abacus"
	"github.com/randalmurphal/abacus/pkg/abacus/config"
	"github.com/randalmurphal/abacus/pkg/abacus/definition"
	abserrors "github.com/randalmurphal/abacus/pkg/abacus/errors"
	"github.com/randalmurphal/abacus/pkg/abacus/inspect"
	"github.com/randalmurphal/abacus/pkg/abacus/rowsource"
	"github.com/randalmurphal/abacus/pkg/abacus/value"
)

// ErrOutputsFailed is returned when at least one output resolved to an error.
var ErrOutputsFailed = errors.New("one or more outputs failed")

// EvalCmd resolves the outputs of a definition document.
type EvalCmd struct {
	File    string   `arg:"" help:"Definition document (YAML or JSON)" type:"existingfile"`
	Output  []string `help:"Output symbol to resolve, as name or namespace.name (repeatable)" short:"o"`
	Set     []string `help:"Define or override a constant symbol, as name=value (repeatable)" short:"s"`
	Inspect bool     `help:"Print inspector annotations for each output"`
	JSON    bool     `help:"Print results as JSON" name:"json"`
}

// outcome is one resolved output.
type outcome struct {
	Name     string         `json:"name"`
	Status   string         `json:"status"`
	Value    *value.Value   `json:"value,omitempty"`
	Error    string         `json:"error,omitempty"`
	Category string         `json:"category,omitempty"`
	Inspect  map[string]any `json:"inspect,omitempty"`
	keys     []string
}

// Run executes the eval command
func (cmd *EvalCmd) Run(ctx *Context) error {
	settings, err := config.LoadSettingsFile(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	doc, err := definition.ParseFile(cmd.File)
	if err != nil {
		return err
	}
	if err := applyOverrides(doc.Symbols, cmd.Set); err != nil {
		return err
	}

	outputs := doc.Outputs
	if len(cmd.Output) > 0 {
		outputs = outputs[:0:0]
		for _, ref := range cmd.Output {
			outputs = append(outputs, definition.ParseSymbolRef(ref))
		}
	}

	tel := startTelemetry(ctx.stderr(), settings)
	defer func() {
		if err := tel.shutdown(context.Background()); err != nil {
			fmt.Fprintf(ctx.stderr(), "telemetry: %v\n", err)
		}
	}()

	r := abacus.New(cmd.resolverOptions(settings, doc.Symbols, ctx.stderr())...)
	results := make([]outcome, 0, len(outputs))
	failed := false
	for _, sym := range outputs {
		res := cmd.resolve(r, sym)
		failed = failed || res.Status == "error"
		results = append(results, res)
	}

	if cmd.JSON {
		enc := json.NewEncoder(ctx.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		for _, res := range results {
			printOutcome(ctx.Stdout, res)
		}
	}

	if failed {
		return ErrOutputsFailed
	}
	return nil
}

func (cmd *EvalCmd) resolverOptions(settings config.Settings, symbols *abacus.SymbolRegistry, stderr io.Writer) []abacus.Option {
	baseDir := settings.BaseDir
	if baseDir == "" {
		baseDir = filepath.Dir(cmd.File)
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: settings.LogLevel}))

	return []abacus.Option{
		abacus.WithSymbols(symbols),
		abacus.WithRowSources(rowsource.Default(baseDir)),
		abacus.WithLogger(logger),
		abacus.WithMemoization(settings.Memoize),
		abacus.WithDefaultDelimiter(settings.Delimiter),
		abacus.WithTimeout(settings.Timeout),
		abacus.WithTracing(settings.Tracing),
		abacus.WithMetrics(settings.Metrics),
	}
}

func (cmd *EvalCmd) resolve(r *abacus.Resolver, sym abacus.Symbol) outcome {
	out := outcome{Name: sym.Key()}

	var opts []abacus.ResolveOption
	var snap *inspect.Snapshot
	if cmd.Inspect {
		snap = inspect.NewSnapshot()
		opts = append(opts, abacus.UsingInspector(snap))
	}

	res := r.Resolve(context.Background(), sym, opts...)
	out.Status = res.Outcome()
	if v, ok := res.Value(); ok {
		out.Value = &v
	}
	if err := res.Err(); err != nil {
		out.Error = err.Error()
		out.Category = abserrors.Categorize(err).String()
	}
	if snap != nil {
		out.Inspect = snap.All()
		out.keys = snap.Keys()
	}
	return out
}

func printOutcome(w io.Writer, res outcome) {
	switch res.Status {
	case "present":
		color.New(color.FgGreen).Fprintf(w, "%s = %s\n", res.Name, res.Value.Repr())
	case "absent":
		color.New(color.FgYellow).Fprintf(w, "%s = <absent>\n", res.Name)
	default:
		color.New(color.FgRed).Fprintf(w, "%s: %s error: %s\n", res.Name, res.Category, res.Error)
	}
	for _, key := range res.keys {
		color.New(color.FgCyan).Fprintf(w, "  %s: %v\n", key, res.Inspect[key])
	}
}

// applyOverrides defines a constant for each name=value. Values that parse
// as JSON keep their JSON type; anything else is a string.
func applyOverrides(symbols *abacus.SymbolRegistry, sets []string) error {
	for _, set := range sets {
		ref, raw, ok := strings.Cut(set, "=")
		if !ok || strings.TrimSpace(ref) == "" {
			return fmt.Errorf("invalid --set %q: expected name=value", set)
		}
		v, ok := value.ParseJSON(raw)
		if !ok {
			v = value.String(raw)
		}
		sym := definition.ParseSymbolRef(ref)
		symbols.DefineIn(sym.Namespace, sym.Name, abacus.Constant{Value: v})
	}
	return nil
}
