package coherence

import (
	"fmt"

	"github.com/fenggang233/Cache-Coherence-Protocol-Simulator/cache"
)

// processMESI implements the Illinois MESI protocol. It shares MSI's
// four-phase shape but adds BusUpgr for a Shared-to-Modified upgrade and
// cache-to-cache transfer via FlushOpt when a peer can source the block
// without a memory access.
func (e *Engine) processMESI(proc int, op Op, addr uint64) {
	requester := e.caches[proc]
	requester.Tick()

	if op == Read {
		requester.IncReads()
	} else {
		requester.IncWrites()
	}

	line := requester.FindLine(addr)
	hit := line != nil
	bus := busRecord{owner: proc}

	switch {
	case !hit:
		victim := requester.FindVictim(addr)
		if victim.State == cache.Modified {
			requester.IncWritebacks()
			requester.IncMemTransactions()
		}
		line = victim

		if op == Read {
			requester.IncReadMisses()
			bus.command = BusRd
			requester.IncBusRd()
		} else {
			requester.IncWriteMisses()
			bus.command = BusRdX
			requester.IncBusRdX()
		}

	case line.State == cache.Shared && op == Write:
		bus.command = BusUpgr
		requester.IncBusUpgrOrUpd()
	}

	if bus.command != NoCommand {
		e.snoopMESI(proc, addr, &bus)
	}

	if !hit {
		line.Tag = requester.Geometry().Tag(addr)
	}
	requester.UpdateLRU(line)

	switch {
	case op == Write:
		line.State = cache.Modified
	case !hit:
		if bus.copiesExist {
			line.State = cache.Shared
		} else {
			line.State = cache.Exclusive
		}
	}

	if bus.command == Flush || bus.command == FlushOpt {
		requester.IncCacheToCacheTransfers()
	}
}

func (e *Engine) snoopMESI(proc int, addr uint64, bus *busRecord) {
	requester := e.caches[proc]

	switch bus.command {
	case BusRd:
		e.peers(proc, func(p int, peer *cache.Cache) {
			peerLine := peer.FindLine(addr)
			if peerLine == nil {
				return
			}
			bus.copiesExist = true

			switch peerLine.State {
			case cache.Modified:
				peer.IncInterventions()
				peer.IncFlushes()
				peer.IncMemTransactions()
				peer.IncWritebacks()
				bus.owner = p
				bus.command = Flush
			case cache.Exclusive:
				peer.IncInterventions()
				bus.owner = p
				bus.command = FlushOpt
			case cache.Shared:
				bus.owner = p
				bus.command = FlushOpt
			}
			peerLine.State = cache.Shared
		})

		if bus.owner == proc {
			requester.IncMemTransactions()
			bus.copiesExist = false
		}

	case BusRdX:
		e.peers(proc, func(p int, peer *cache.Cache) {
			peerLine := peer.FindLine(addr)
			if peerLine == nil {
				return
			}
			peer.IncInvalidations()
			bus.owner = p
			bus.command = FlushOpt
			if peerLine.State == cache.Modified {
				peer.IncFlushes()
				peer.IncMemTransactions()
				peer.IncWritebacks()
				bus.command = Flush
			}
			peerLine.State = cache.Invalid
		})

		if bus.owner == proc {
			requester.IncMemTransactions()
		}

	case BusUpgr:
		e.peers(proc, func(p int, peer *cache.Cache) {
			peerLine := peer.FindLine(addr)
			if peerLine == nil || peerLine.State != cache.Shared {
				return
			}
			peer.IncInvalidations()
			peerLine.State = cache.Invalid
		})

	default:
		panic(fmt.Sprintf("coherence(MESI): unreachable bus command %v in snoop", bus.command))
	}
}
