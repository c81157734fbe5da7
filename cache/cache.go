package cache

// Cache is a per-processor set-associative tag store with LRU
// replacement, grounded on the empty-way-first-then-LRU victim policy
// used throughout the retrieval pack's cache implementations.
type Cache struct {
	geometry    Geometry
	sets        [][]Line
	currentTick uint64
	counters    Counters
}

// New builds an empty cache of the given geometry. Every line starts
// Invalid.
func New(geometry Geometry) *Cache {
	sets := make([][]Line, geometry.NumSets)
	for i := range sets {
		sets[i] = make([]Line, geometry.Associativity)
	}
	return &Cache{geometry: geometry, sets: sets}
}

// Geometry returns the cache's fixed layout.
func (c *Cache) Geometry() Geometry { return c.geometry }

// Counters returns a snapshot of the cache's statistics.
func (c *Cache) Counters() Counters { return c.counters }

// Tick advances the cache's monotonic request counter. The coherence
// engine calls this once per processed request, independent of LRU rank
// assignment — the same counter backs both, exactly as the source
// simulator's currentCycle does.
func (c *Cache) Tick() { c.currentTick++ }

// FindLine returns the valid line in addr's set whose tag matches addr,
// or nil if no such line exists. It never mutates cache state.
func (c *Cache) FindLine(addr uint64) *Line {
	set := c.set(addr)
	tag := c.geometry.Tag(addr)
	for i := range set {
		if set[i].Valid() && set[i].Tag == tag {
			return &set[i]
		}
	}
	return nil
}

// FindVictim returns the line that will be (re)used to hold addr: the
// first invalid line in the set if any exists, otherwise the valid line
// with the smallest LRU rank. It never returns nil, and it does not
// mutate the line — eviction accounting and overwriting it are the
// caller's responsibility, since only the caller knows whether the
// victim's state implies a dirty eviction.
func (c *Cache) FindVictim(addr uint64) *Line {
	set := c.set(addr)
	for i := range set {
		if !set[i].Valid() {
			return &set[i]
		}
	}

	victim := &set[0]
	for i := 1; i < len(set); i++ {
		if set[i].LRURank < victim.LRURank {
			victim = &set[i]
		}
	}
	return victim
}

// UpdateLRU stamps line with a fresh rank and advances the tick. It must
// be called after every hit and after every fill.
func (c *Cache) UpdateLRU(line *Line) {
	line.LRURank = c.currentTick
	c.currentTick++
}

func (c *Cache) set(addr uint64) []Line {
	return c.sets[c.geometry.Index(addr)]
}

// The Inc* methods below are the one-method-per-counter accounting API
// the coherence engine drives; see Counters for the fields themselves.

func (c *Cache) IncReads() { c.counters.incReads() }
func (c *Cache) IncReadMisses() { c.counters.incReadMisses() }
func (c *Cache) IncWrites() { c.counters.incWrites() }
func (c *Cache) IncWriteMisses() { c.counters.incWriteMisses() }
func (c *Cache) IncWritebacks() { c.counters.incWritebacks() }
func (c *Cache) IncCacheToCacheTransfers() { c.counters.incCacheToCacheTransfers() }
func (c *Cache) IncMemTransactions() { c.counters.incMemTransactions() }
func (c *Cache) IncInterventions() { c.counters.incInterventions() }
func (c *Cache) IncInvalidations() { c.counters.incInvalidations() }
func (c *Cache) IncFlushes() { c.counters.incFlushes() }
func (c *Cache) IncBusRd() { c.counters.incBusRd() }
func (c *Cache) IncBusRdX() { c.counters.incBusRdX() }
func (c *Cache) IncBusUpgrOrUpd() { c.counters.incBusUpgrOrUpd() }
