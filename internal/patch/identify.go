package patch

import (
	"sync"

	"github.com/eqgo/server/internal/emu"
	"go.uber.org/zap"
)

// Signature recognizes a client version from the first packet of a stream.
type Signature struct {
	Name         string
	FirstOpcode  emu.Opcode
	FirstLength  int
	IgnoreOpcode emu.Opcode
}

// IdentifyResult is the verdict for one candidate first packet.
type IdentifyResult int

const (
	// NoMatch means no registered patch recognizes the packet.
	NoMatch IdentifyResult = iota
	// Ignored means the packet is allowed before identification; feed the next one.
	Ignored
	Matched
)

type candidate struct {
	sig      Signature
	strategy *Strategy
}

// Identifier picks the translation layer for a new client stream. Only
// patches whose opcode table loaded are ever registered.
type Identifier struct {
	mu         sync.RWMutex
	candidates []candidate
	log        *zap.Logger
}

func NewIdentifier(log *zap.Logger) *Identifier {
	return &Identifier{log: log}
}

// Register adds a patch under each of its stream signatures.
func (id *Identifier) Register(s *Strategy, sigs ...Signature) {
	id.mu.Lock()
	defer id.mu.Unlock()
	for _, sig := range sigs {
		id.candidates = append(id.candidates, candidate{sig: sig, strategy: s})
	}
	id.log.Info("patch registered", zap.String("patch", s.Name()), zap.Int("signatures", len(sigs)))
}

// Identify checks the first packet of a stream against every registered signature.
func (id *Identifier) Identify(first WirePacket) (*Strategy, string, IdentifyResult) {
	id.mu.RLock()
	defer id.mu.RUnlock()

	result := NoMatch
	for _, c := range id.candidates {
		op := c.strategy.Opcodes().EQToEmu(first.Opcode)
		if op == emu.OpUnknown {
			continue
		}
		if c.sig.IgnoreOpcode != emu.OpUnknown && op == c.sig.IgnoreOpcode {
			result = Ignored
			continue
		}
		if op == c.sig.FirstOpcode && len(first.Data) == c.sig.FirstLength {
			return c.strategy, c.sig.Name, Matched
		}
	}
	return nil, "", result
}
