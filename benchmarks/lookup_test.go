package benchmarks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/randalmurphal/abacus/pkg/abacus"
	"github.com/randalmurphal/abacus/pkg/abacus/lookup"
	"github.com/randalmurphal/abacus/pkg/abacus/rowsource"
)

// bandRecords returns a header and n contiguous bands of width 1000.
func bandRecords(n int) [][]string {
	records := make([][]string, 0, n+1)
	records = append(records, []string{"min", "max", "premium"})
	for i := 0; i < n; i++ {
		records = append(records, []string{
			fmt.Sprint(i * 1000),
			fmt.Sprint((i + 1) * 1000),
			fmt.Sprint(i),
		})
	}
	return records
}

func bandLookup(turnover int) abacus.Lookup {
	return abacus.Lookup{
		Path:      "bands.csv",
		HasHeader: true,
		Filters: []abacus.Filter{
			abacus.RangeFilter{MinColumn: "min", MaxColumn: "max", Value: abacus.Const(turnover)},
		},
		Columns: []string{"premium"},
	}
}

// BenchmarkLookup_Memory_Range_1000 scans to the last of 1000 in-memory bands.
func BenchmarkLookup_Memory_Range_1000(b *testing.B) {
	mem := rowsource.NewMemory()
	mem.Put("bands.csv", bandRecords(1000))
	r := abacus.New(abacus.WithRowSources(mem), abacus.WithLogger(nil))
	node := bandLookup(999_500)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.Resolve(ctx, node)
	}
}

// BenchmarkLookup_CSV_Range_1000 scans to the last of 1000 bands on disk.
func BenchmarkLookup_CSV_Range_1000(b *testing.B) {
	dir := b.TempDir()
	var sb strings.Builder
	for _, rec := range bandRecords(1000) {
		sb.WriteString(strings.Join(rec, ","))
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(filepath.Join(dir, "bands.csv"), []byte(sb.String()), 0o600); err != nil {
		b.Fatal(err)
	}
	r := abacus.New(abacus.WithRowSources(rowsource.Default(dir)), abacus.WithLogger(nil))
	node := bandLookup(999_500)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.Resolve(ctx, node)
	}
}

// BenchmarkLookup_Memory_Sum_1000 sums a column over 1000 rows.
func BenchmarkLookup_Memory_Sum_1000(b *testing.B) {
	mem := rowsource.NewMemory()
	mem.Put("bands.csv", bandRecords(1000))
	r := abacus.New(abacus.WithRowSources(mem), abacus.WithLogger(nil))
	node := abacus.Lookup{
		Path:            "bands.csv",
		HasHeader:       true,
		Aggregate:       lookup.Sum,
		AggregateColumn: "premium",
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.Resolve(ctx, node)
	}
}
