package coherence

import (
	"fmt"

	"github.com/fenggang233/Cache-Coherence-Protocol-Simulator/cache"
)

// processMSI implements the MSI protocol's four-phase request handler:
// account and look up, determine the bus command, snoop peers, resolve
// the requester's final state. The per-command peer reactions are in
// snoopMSI below.
func (e *Engine) processMSI(proc int, op Op, addr uint64) {
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
		bus.command = BusRdX
		requester.IncBusRdX()
	}

	if bus.command != NoCommand {
		e.snoopMSI(proc, addr, &bus)
	}

	if !hit {
		line.Tag = requester.Geometry().Tag(addr)
	}
	requester.UpdateLRU(line)

	switch {
	case op == Write:
		line.State = cache.Modified
	case !hit:
		line.State = cache.Shared
	}
}

func (e *Engine) snoopMSI(proc int, addr uint64, bus *busRecord) {
	requester := e.caches[proc]

	switch bus.command {
	case BusRd:
		requester.IncMemTransactions()
		e.peers(proc, func(p int, peer *cache.Cache) {
			peerLine := peer.FindLine(addr)
			if peerLine == nil || peerLine.State != cache.Modified {
				return
			}
			peerLine.State = cache.Shared
			peer.IncInterventions()
			peer.IncFlushes()
			peer.IncMemTransactions()
			peer.IncWritebacks()
			bus.owner = p
			bus.command = Flush
		})

	case BusRdX:
		requester.IncMemTransactions()
		e.peers(proc, func(p int, peer *cache.Cache) {
			peerLine := peer.FindLine(addr)
			if peerLine == nil {
				return
			}
			peer.IncInvalidations()
			if peerLine.State == cache.Modified {
				peer.IncFlushes()
				peer.IncMemTransactions()
				peer.IncWritebacks()
				bus.owner = p
				bus.command = Flush
			}
			peerLine.State = cache.Invalid
		})

	default:
		panic(fmt.Sprintf("coherence(MSI): unreachable bus command %v in snoop", bus.command))
	}
}
