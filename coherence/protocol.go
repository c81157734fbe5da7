// Package coherence implements the snoopy bus coherence engine: given a
// protocol (MSI, MESI, or Dragon) and a set of per-processor caches, it
// drives the request -> bus command -> peer snoop -> resolve skeleton that
// all three protocols share.
package coherence

import "fmt"

// Op is the kind of memory access a processor issues.
type Op int

const (
	Read Op = iota
	Write
)

// String renders the op as "READ" or "WRITE".
func (o Op) String() string {
	if o == Write {
		return "WRITE"
	}
	return "READ"
}

// BusCommand is the transaction type driven onto the shared bus for one
// access. NoCommand means the access was a hit that needed no
// permission change and so never touched the bus.
type BusCommand int

const (
	NoCommand BusCommand = iota
	BusRd
	BusRdX
	BusUpgr
	BusUpd
	Flush
	FlushOpt
)

func (b BusCommand) String() string {
	switch b {
	case NoCommand:
		return "NONE"
	case BusRd:
		return "BusRd"
	case BusRdX:
		return "BusRdX"
	case BusUpgr:
		return "BusUpgr"
	case BusUpd:
		return "BusUpd"
	case Flush:
		return "Flush"
	case FlushOpt:
		return "FlushOpt"
	default:
		return "UNKNOWN"
	}
}

// Protocol selects which coherence protocol an Engine enforces.
type Protocol int

const (
	MSI Protocol = iota
	MESI
	Dragon
)

func (p Protocol) String() string {
	switch p {
	case MSI:
		return "MSI"
	case MESI:
		return "MESI"
	case Dragon:
		return "Dragon"
	default:
		return "UNKNOWN"
	}
}

// ParseProtocol maps the CLI's numeric protocol id onto a Protocol:
// 0=MSI, 1=MESI, 2=Dragon.
func ParseProtocol(id int) (Protocol, error) {
	switch id {
	case 0:
		return MSI, nil
	case 1:
		return MESI, nil
	case 2:
		return Dragon, nil
	default:
		return 0, fmt.Errorf("unknown coherence protocol id %d (expected 0=MSI, 1=MESI, 2=Dragon)", id)
	}
}

// busRecord is the ephemeral per-access bus state: who owns the
// transaction, what command is on the bus, and whether any peer held a
// copy. It is always a stack-local value, built afresh on every
// ProcessRequest call with the requester as owner and no command — never
// a field on Engine — so there is nothing to
// reset or leak between requests.
type busRecord struct {
	owner       int
	command     BusCommand
	copiesExist bool
}
