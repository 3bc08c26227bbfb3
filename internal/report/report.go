// Package report formats simulator counters as human-readable text. This
// is explicitly outside the access-processing engine's scope (spec.md
// §1), but the CLI's `p` (print stats) command needs something to call.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/newhook/hybridmem/internal/engine"
)

// Write renders e's current counters to w in the section layout
// original_source's printStats uses (spec.md Non-goals keep this out of
// the core, but the layout is still grounded on the reference).
func Write(w io.Writer, e *engine.Engine) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "=== Memory Statistics ===")
	fmt.Fprintf(tw, "Total Accesses:\t%d\n", e.Counters.TotalAccesses)
	fmt.Fprintf(tw, "Row Buffer Hits:\t%d\n", e.Counters.RowHits)
	fmt.Fprintf(tw, "Row Buffer Misses:\t%d\n", e.Counters.RowMisses)
	fmt.Fprintf(tw, "Refresh Cycles:\t%d\n", e.Counters.RefreshCycles)

	if e.Counters.TotalAccesses > 0 {
		hitRatio := float64(e.Counters.RowHits) / float64(e.Counters.TotalAccesses) * 100
		avgLatency := float64(e.Counters.TotalLatency) / float64(e.Counters.TotalAccesses)
		fmt.Fprintf(tw, "Row Buffer Hit Ratio:\t%.2f%%\n", hitRatio)
		fmt.Fprintf(tw, "Average Access Latency:\t%.2f cycles\n", avgLatency)
	} else {
		fmt.Fprintln(tw, "Row Buffer Hit Ratio:\tN/A (no accesses)")
		fmt.Fprintln(tw, "Average Access Latency:\tN/A (no accesses)")
	}

	fmt.Fprintf(tw, "Total Latency:\t%d cycles\n", e.Counters.TotalLatency)

	fmt.Fprintln(tw, "\n--- Bank Status ---")
	fmt.Fprintf(tw, "Total Banks:\t%d\n", e.BankCount())
	fmt.Fprintf(tw, "Rows per Bank:\t%d\n", e.RowsPerBank())
	fmt.Fprintf(tw, "Columns per Row:\t%d\n", e.ColumnsPerRow())

	if e.FlashEnabled() {
		dramAccesses := e.Counters.DRAMAccesses()
		flashAccesses := e.Counters.FlashAccesses()

		fmt.Fprintln(tw, "\n=== Hybrid Memory Statistics ===")
		fmt.Fprintf(tw, "DRAM Accesses:\t%d (hits: %d, misses: %d)\n",
			dramAccesses, e.Counters.RowHits, e.Counters.RowMisses)
		fmt.Fprintf(tw, "Flash Reads:\t%d\n", e.Counters.FlashReads)
		fmt.Fprintf(tw, "Flash Writes:\t%d\n", e.Counters.FlashWrites)
		fmt.Fprintf(tw, "Total Flash Accesses:\t%d\n", flashAccesses)

		fmt.Fprintln(tw, "\n--- Cache Statistics ---")
		fmt.Fprintf(tw, "DRAM Cache Hits:\t%d\n", e.Counters.DRAMCacheHits)
		fmt.Fprintf(tw, "DRAM Cache Misses:\t%d\n", e.Counters.DRAMCacheMisses)
		fmt.Fprintf(tw, "Cache Promotions:\t%d\n", e.Counters.CachePromotions)
		fmt.Fprintf(tw, "Cache Evictions:\t%d\n", e.Counters.CacheEvictions)
		fmt.Fprintf(tw, "Cache Overhead:\t%d cycles\n", e.Counters.CacheOverhead)

		fmt.Fprintln(tw, "\n--- Latency Breakdown ---")
		fmt.Fprintf(tw, "DRAM Access Latency:\t%d cycles\n", e.Counters.DRAMAccessLatency)
		fmt.Fprintf(tw, "Flash Access Latency:\t%d cycles\n", e.Counters.FlashAccessLatency)

		fmt.Fprintln(tw, "\n--- Flash Memory Status ---")
		fmt.Fprintf(tw, "Flash Capacity:\t%d bytes\n", e.FlashCapacity())
		fmt.Fprintf(tw, "Flash Page Size:\t%d bytes\n", e.FlashPageSize())
		fmt.Fprintf(tw, "Total Flash Pages:\t%d\n", e.FlashPageCount())
	}

	tw.Flush()
}

// String renders e's counters to a string, for callers that don't already
// have an io.Writer on hand (e.g. the Bubble Tea TUI).
func String(e *engine.Engine) string {
	var b strings.Builder
	Write(&b, e)
	return b.String()
}
