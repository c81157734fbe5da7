package coherence

import (
	"fmt"

	"github.com/fenggang233/Cache-Coherence-Protocol-Simulator/cache"
)

// Engine orchestrates the four-phase request/snoop/resolve skeleton
// shared by MSI, MESI, and Dragon: look up the requester's line, emit a
// bus command on a miss or permission upgrade, snoop every peer cache in
// ascending processor-id order, and resolve the requester's final state.
type Engine struct {
	protocol Protocol
	caches   []*cache.Cache
}

// New constructs an Engine managing numProcessors independent caches,
// all built from the same geometry.
func New(protocol Protocol, numProcessors int, geometry cache.Geometry) *Engine {
	caches := make([]*cache.Cache, numProcessors)
	for i := range caches {
		caches[i] = cache.New(geometry)
	}
	return &Engine{protocol: protocol, caches: caches}
}

// Protocol returns the protocol this engine enforces.
func (e *Engine) Protocol() Protocol { return e.protocol }

// NumProcessors returns how many caches the engine manages.
func (e *Engine) NumProcessors() int { return len(e.caches) }

// Cache returns the per-processor cache, for statistics reporting.
func (e *Engine) Cache(proc int) *cache.Cache { return e.caches[proc] }

// ProcessRequest accounts one (proc, op, addr) access against the
// requester's cache, driving whatever bus traffic and peer snooping the
// active protocol requires. proc must be in [0, NumProcessors); an
// out-of-range processor id is an engine-level invariant violation, not
// a data error, and panics rather than returning an error.
func (e *Engine) ProcessRequest(proc int, op Op, addr uint64) {
	if proc < 0 || proc >= len(e.caches) {
		panic(fmt.Sprintf("coherence: processor id %d out of range [0,%d)", proc, len(e.caches)))
	}

	switch e.protocol {
	case MSI:
		e.processMSI(proc, op, addr)
	case MESI:
		e.processMESI(proc, op, addr)
	case Dragon:
		e.processDragon(proc, op, addr)
	default:
		panic(fmt.Sprintf("coherence: unknown protocol %v", e.protocol))
	}
}

// peers calls fn for every cache other than proc, in ascending
// processor-id order. The order is a protocol invariant (spec ties
// bus-ownership races to it), not an implementation convenience.
func (e *Engine) peers(proc int, fn func(p int, peer *cache.Cache)) {
	for p := 0; p < len(e.caches); p++ {
		if p == proc {
			continue
		}
		fn(p, e.caches[p])
	}
}
