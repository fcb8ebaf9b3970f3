package patch

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/eqgo/server/internal/emu"
	"go.uber.org/zap"
)

// Outcome says what the dispatch layer did with one message.
type Outcome int

const (
	Translated Outcome = iota
	Passthrough
	Dropped
)

func (o Outcome) String() string {
	switch o {
	case Translated:
		return "Translated"
	case Passthrough:
		return "Passthrough"
	case Dropped:
		return "Dropped"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// WirePacket is one client packet with its numeric opcode.
type WirePacket struct {
	Opcode uint16
	Data   []byte
}

// Outbound is the result of encoding one canonical message.
type Outbound struct {
	Outcome Outcome
	Packets []WirePacket
	Err     error
}

// Inbound is the result of decoding one client packet.
type Inbound struct {
	Outcome Outcome
	Op      emu.Opcode
	Message emu.Message
	Err     error
}

// Builder creates a fresh translator table.
type Builder func(log *zap.Logger) *Table

// Strategy is one client version's translation layer. Encode and Decode may
// be called from any number of connection goroutines; the active table is
// swapped atomically by Install and Reload.
type Strategy struct {
	name    string
	build   Builder
	opcodes *OpcodeManager
	table   atomic.Pointer[Table]
	log     *zap.Logger
}

// NewStrategy builds the initial table. opcodes must already be loaded.
func NewStrategy(name string, build Builder, opcodes *OpcodeManager, log *zap.Logger) *Strategy {
	s := &Strategy{
		name:    name,
		build:   build,
		opcodes: opcodes,
		log:     log.With(zap.String("patch", name)),
	}
	s.table.Store(build(s.log))
	return s
}

func (s *Strategy) Name() string { return s.name }

func (s *Strategy) Opcodes() *OpcodeManager { return s.opcodes }

// Table returns the active translator table.
func (s *Strategy) Table() *Table { return s.table.Load() }

// Install replaces the active translator table.
func (s *Strategy) Install(t *Table) {
	s.table.Store(t)
}

// Reload re-reads the opcode file and rebuilds the translator table. When
// the opcode file cannot be read both old tables stay active.
func (s *Strategy) Reload() error {
	if err := s.opcodes.Reload(); err != nil {
		return fmt.Errorf("reload %s: %w", s.name, err)
	}
	s.Install(s.build(s.log))
	return nil
}

// Encode translates a server message into client packets. Messages without
// a registered encoder go out verbatim; a failing encoder drops the message.
func (s *Strategy) Encode(msg emu.Message) Outbound {
	op := msg.Opcode()
	enc := s.table.Load().encoder(op)

	var outs []Outgoing
	outcome := Translated
	if enc == nil {
		data, err := emu.Marshal(msg)
		if err != nil {
			return s.dropOut(op, err)
		}
		outs = []Outgoing{{Op: op, Data: data}}
		outcome = Passthrough
	} else {
		var err error
		outs, err = s.safeEncode(enc, op, msg)
		if err != nil {
			return s.dropOut(op, err)
		}
	}

	packets := make([]WirePacket, 0, len(outs))
	for _, o := range outs {
		n := s.opcodes.EmuToEQ(o.Op)
		if n == 0 {
			return s.dropOut(o.Op, fmt.Errorf("%s: %w", o.Op, ErrNoOpcode))
		}
		packets = append(packets, WirePacket{Opcode: n, Data: o.Data})
	}
	return Outbound{Outcome: outcome, Packets: packets}
}

// Decode translates a client packet into a server message. Unknown opcodes
// and opcodes without a decoder come through as emu.Raw.
func (s *Strategy) Decode(pkt WirePacket) Inbound {
	op := s.opcodes.EQToEmu(pkt.Opcode)
	if op == emu.OpUnknown {
		s.log.Debug("unknown client opcode",
			zap.Uint16("opcode", pkt.Opcode),
			zap.Int("size", len(pkt.Data)),
		)
		return Inbound{Outcome: Passthrough, Op: op, Message: emu.Raw{Op: op, Data: pkt.Data}}
	}

	dec := s.table.Load().decoder(op)
	if dec == nil {
		return Inbound{Outcome: Passthrough, Op: op, Message: emu.Raw{Op: op, Data: pkt.Data}}
	}

	msg, err := s.safeDecode(dec, op, pkt.Data)
	if err != nil {
		s.logDrop("decode", op, len(pkt.Data), err)
		return Inbound{Outcome: Dropped, Op: op, Err: err}
	}
	return Inbound{Outcome: Translated, Op: op, Message: msg}
}

func (s *Strategy) dropOut(op emu.Opcode, err error) Outbound {
	s.logDrop("encode", op, -1, err)
	return Outbound{Outcome: Dropped, Err: err}
}

func (s *Strategy) logDrop(dir string, op emu.Opcode, size int, err error) {
	fields := []zap.Field{
		zap.String("dir", dir),
		zap.Stringer("op", op),
		zap.Error(err),
	}
	var se *SizeError
	if errors.As(err, &se) {
		fields = append(fields, zap.Int("expected", se.Expected), zap.Int("actual", se.Actual))
	} else if size >= 0 {
		fields = append(fields, zap.Int("size", size))
	}
	s.log.Warn("packet dropped", fields...)
}

// safeEncode runs an encoder with panic recovery so a single bad message
// cannot take the connection down.
func (s *Strategy) safeEncode(fn EncodeFunc, op emu.Opcode, msg emu.Message) (outs []Outgoing, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error("encoder panic recovered",
				zap.Stringer("op", op),
				zap.Any("panic", rec),
			)
			outs, err = nil, fmt.Errorf("encoder panic for %s: %v", op, rec)
		}
	}()
	return fn(op, msg)
}

func (s *Strategy) safeDecode(fn DecodeFunc, op emu.Opcode, data []byte) (msg emu.Message, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error("decoder panic recovered",
				zap.Stringer("op", op),
				zap.Any("panic", rec),
			)
			msg, err = nil, fmt.Errorf("decoder panic for %s: %v", op, rec)
		}
	}()
	return fn(op, data)
}
