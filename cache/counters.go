package cache

// Counters holds the operational statistics tracked by one processor's
// cache. All counters start at zero and are monotonically
// non-decreasing.
type Counters struct {
	Reads                 uint64
	ReadMisses             uint64
	Writes                 uint64
	WriteMisses            uint64
	Writebacks             uint64
	CacheToCacheTransfers  uint64
	MemTransactions        uint64
	Interventions          uint64
	Invalidations          uint64
	Flushes                uint64
	BusRd                  uint64
	BusRdX                 uint64
	BusUpgrOrUpd           uint64
}

// MissRate returns the percentage of accesses (reads+writes) that
// missed. It returns 0 rather than dividing by zero when there have been
// no accesses yet.
func (c Counters) MissRate() float64 {
	total := c.Reads + c.Writes
	if total == 0 {
		return 0
	}
	misses := c.ReadMisses + c.WriteMisses
	return 100 * float64(misses) / float64(total)
}

func (c *Counters) incReads()                { c.Reads++ }
func (c *Counters) incReadMisses()            { c.ReadMisses++ }
func (c *Counters) incWrites()                { c.Writes++ }
func (c *Counters) incWriteMisses()           { c.WriteMisses++ }
func (c *Counters) incWritebacks()            { c.Writebacks++ }
func (c *Counters) incCacheToCacheTransfers() { c.CacheToCacheTransfers++ }
func (c *Counters) incMemTransactions()       { c.MemTransactions++ }
func (c *Counters) incInterventions()         { c.Interventions++ }
func (c *Counters) incInvalidations()         { c.Invalidations++ }
func (c *Counters) incFlushes()               { c.Flushes++ }
func (c *Counters) incBusRd()                 { c.BusRd++ }
func (c *Counters) incBusRdX()                { c.BusRdX++ }
func (c *Counters) incBusUpgrOrUpd()          { c.BusUpgrOrUpd++ }
