package coherence

import (
	"fmt"

	"github.com/fenggang233/Cache-Coherence-Protocol-Simulator/cache"
)

// processDragon implements the Dragon update-based protocol. Unlike MSI
// and MESI it never invalidates a peer on a write; instead it updates
// every sharer via BusUpd and tracks dirty-but-shared data with the
// SModified/SClean states.
func (e *Engine) processDragon(proc int, op Op, addr uint64) {
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
	miss := !hit

	switch {
	case miss:
		victim := requester.FindVictim(addr)
		if victim.State == cache.Modified || victim.State == cache.SModified {
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
			bus.command = BusUpd
			requester.IncBusRd()
			requester.IncBusUpgrOrUpd()
		}

	case op == Write && (line.State == cache.SModified || line.State == cache.SClean):
		bus.command = BusUpd
		requester.IncBusUpgrOrUpd()
	}

	wasExclusiveHit := hit && line.State == cache.Exclusive

	if bus.command != NoCommand {
		e.snoopDragon(proc, addr, miss, &bus)
	}

	if miss {
		line.Tag = requester.Geometry().Tag(addr)
	}
	requester.UpdateLRU(line)

	switch {
	case op == Write && wasExclusiveHit:
		line.State = cache.Modified
	case op == Write:
		if bus.copiesExist {
			line.State = cache.SModified
		} else {
			line.State = cache.Modified
		}
	case miss:
		if bus.copiesExist {
			line.State = cache.SClean
		} else {
			line.State = cache.Exclusive
		}
	}
}

func (e *Engine) snoopDragon(proc int, addr uint64, miss bool, bus *busRecord) {
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
				peerLine.State = cache.SModified
				peer.IncInterventions()
				peer.IncFlushes()
				peer.IncMemTransactions()
				bus.owner = p
				bus.command = Flush
			case cache.Exclusive:
				peerLine.State = cache.SClean
				peer.IncInterventions()
			case cache.SModified:
				peer.IncFlushes()
				peer.IncMemTransactions()
				bus.owner = p
				bus.command = Flush
			case cache.SClean:
				// already shared clean; no side effects beyond bus sharing
			}
		})

		if bus.owner == proc || bus.command != Flush {
			requester.IncMemTransactions()
		}

	case BusUpd:
		e.peers(proc, func(p int, peer *cache.Cache) {
			peerLine := peer.FindLine(addr)
			if peerLine == nil {
				return
			}
			bus.copiesExist = true
			bus.owner = p

			switch peerLine.State {
			case cache.Modified:
				peer.IncFlushes()
				peer.IncInterventions()
				peer.IncMemTransactions()
				bus.command = Flush
			case cache.Exclusive:
				peer.IncInterventions()
			case cache.SModified:
				if miss {
					peer.IncFlushes()
					peer.IncMemTransactions()
				}
				bus.command = Flush
			case cache.SClean:
				// already shared clean; no side effects
			}
			peerLine.State = cache.SClean
		})

		if miss && (bus.owner == proc || bus.command != Flush) {
			requester.IncMemTransactions()
		}

	default:
		panic(fmt.Sprintf("coherence(Dragon): unreachable bus command %v in snoop", bus.command))
	}
}
