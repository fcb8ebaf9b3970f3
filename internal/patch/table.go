package patch

import (
	"fmt"
	"sort"

	"github.com/eqgo/server/internal/emu"
)

// Outgoing is one translated packet before its opcode is bound to a number.
type Outgoing struct {
	Op   emu.Opcode
	Data []byte
}

// EncodeFunc turns a canonical message into client bytes. An encoder may emit
// a different opcode than it was registered for, or several packets.
type EncodeFunc func(op emu.Opcode, msg emu.Message) ([]Outgoing, error)

// DecodeFunc turns client bytes into a canonical message.
type DecodeFunc func(op emu.Opcode, data []byte) (emu.Message, error)

// Table maps logical opcodes to translators for one client version. It is
// filled once by a builder and never written after it is installed.
type Table struct {
	encoders map[emu.Opcode]EncodeFunc
	decoders map[emu.Opcode]DecodeFunc
}

func NewTable() *Table {
	return &Table{
		encoders: make(map[emu.Opcode]EncodeFunc),
		decoders: make(map[emu.Opcode]DecodeFunc),
	}
}

// Encoder registers the server-to-client translator for op.
func (t *Table) Encoder(op emu.Opcode, fn EncodeFunc) {
	t.encoders[op] = fn
}

// Decoder registers the client-to-server translator for op.
func (t *Table) Decoder(op emu.Opcode, fn DecodeFunc) {
	t.decoders[op] = fn
}

// ForwardEncode makes op reuse the encoder already registered for target.
func (t *Table) ForwardEncode(op, target emu.Opcode) {
	fn, ok := t.encoders[target]
	if !ok {
		panic(fmt.Sprintf("patch: forward %s to unregistered encoder %s", op, target))
	}
	t.encoders[op] = fn
}

// ForwardDecode makes op reuse the decoder already registered for target.
func (t *Table) ForwardDecode(op, target emu.Opcode) {
	fn, ok := t.decoders[target]
	if !ok {
		panic(fmt.Sprintf("patch: forward %s to unregistered decoder %s", op, target))
	}
	t.decoders[op] = fn
}

func (t *Table) encoder(op emu.Opcode) EncodeFunc { return t.encoders[op] }
func (t *Table) decoder(op emu.Opcode) DecodeFunc { return t.decoders[op] }

// HasEncoder reports whether op is translated on the way out.
func (t *Table) HasEncoder(op emu.Opcode) bool {
	_, ok := t.encoders[op]
	return ok
}

// HasDecoder reports whether op is translated on the way in.
func (t *Table) HasDecoder(op emu.Opcode) bool {
	_, ok := t.decoders[op]
	return ok
}

// EncodeOps lists opcodes with an encoder, sorted.
func (t *Table) EncodeOps() []emu.Opcode {
	return sortedKeys(t.encoders)
}

// DecodeOps lists opcodes with a decoder, sorted.
func (t *Table) DecodeOps() []emu.Opcode {
	return sortedKeys(t.decoders)
}

func sortedKeys[V any](m map[emu.Opcode]V) []emu.Opcode {
	ops := make([]emu.Opcode, 0, len(m))
	for op := range m {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}
