// Package report formats the simulator's configuration banner and
// per-cache statistics block to an io.Writer.
package report

import (
	"fmt"
	"io"

	"github.com/fenggang233/Cache-Coherence-Protocol-Simulator/cache"
	"github.com/fenggang233/Cache-Coherence-Protocol-Simulator/coherence"
)

// Config is the six CLI parameters the banner echoes, plus the parsed
// protocol they selected.
type Config struct {
	CacheSizeBytes int
	Associativity  int
	BlockSizeBytes int
	NumProcessors  int
	Protocol       coherence.Protocol
	TraceFile      string
}

// PrintBanner writes the configuration banner section.
func PrintBanner(w io.Writer, cfg Config) {
	fmt.Fprintf(w, "Cache size: %d\n", cfg.CacheSizeBytes)
	fmt.Fprintf(w, "Associativity: %d\n", cfg.Associativity)
	fmt.Fprintf(w, "Block size: %d\n", cfg.BlockSizeBytes)
	fmt.Fprintf(w, "Number of processors: %d\n", cfg.NumProcessors)
	fmt.Fprintf(w, "Protocol: %s\n", cfg.Protocol)
	fmt.Fprintf(w, "Trace file: %s\n", cfg.TraceFile)
}

// PrintCache writes one cache's results block: the titled header
// followed by the fixed twelve numbered statistics lines.
func PrintCache(w io.Writer, id int, c cache.Counters) {
	fmt.Fprintf(w, "============ Simulation results (Cache %d) ============\n", id)
	fmt.Fprintf(w, "01. number of reads: %d\n", c.Reads)
	fmt.Fprintf(w, "02. number of read misses: %d\n", c.ReadMisses)
	fmt.Fprintf(w, "03. number of writes: %d\n", c.Writes)
	fmt.Fprintf(w, "04. number of write misses: %d\n", c.WriteMisses)
	fmt.Fprintf(w, "05. total miss rate: %.2f%%\n", c.MissRate())
	fmt.Fprintf(w, "06. number of writebacks: %d\n", c.Writebacks)
	fmt.Fprintf(w, "07. number of cache-to-cache transfers: %d\n", c.CacheToCacheTransfers)
	fmt.Fprintf(w, "08. number of memory transactions: %d\n", c.MemTransactions)
	fmt.Fprintf(w, "09. number of interventions: %d\n", c.Interventions)
	fmt.Fprintf(w, "10. number of invalidations: %d\n", c.Invalidations)
	fmt.Fprintf(w, "11. number of flushes: %d\n", c.Flushes)
	fmt.Fprintf(w, "12. number of BusRdX: %d\n", c.BusRdX)
}

// PrintAll writes the banner followed by every cache's results block, in
// ascending cache id order.
func PrintAll(w io.Writer, cfg Config, engine *coherence.Engine) {
	PrintBanner(w, cfg)
	for i := 0; i < engine.NumProcessors(); i++ {
		PrintCache(w, i, engine.Cache(i).Counters())
	}
}
