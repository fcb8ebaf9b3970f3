package patch

import (
	"bytes"
	"encoding/binary"

	"github.com/eqgo/server/internal/emu"
)

// DecodeExact unpacks data into the fixed-size struct v after checking that
// the lengths match exactly.
func DecodeExact(op emu.Opcode, data []byte, v any) error {
	want := binary.Size(v)
	if len(data) != want {
		return &SizeError{Op: op, Expected: want, Actual: len(data)}
	}
	return binary.Read(bytes.NewReader(data), binary.LittleEndian, v)
}

// EncodeFixed packs a fixed-size struct.
func EncodeFixed(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(binary.Size(v))
	if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// As returns msg as the canonical struct E. Messages of another type are
// reinterpreted through their canonical bytes, which must be exactly the
// size of E; this is how forwarded opcodes share one translator.
func As[E emu.Message](op emu.Opcode, msg emu.Message) (E, error) {
	if v, ok := msg.(E); ok {
		return v, nil
	}
	var out E
	data, err := emu.Marshal(msg)
	if err != nil {
		return out, err
	}
	if err := DecodeExact(op, data, &out); err != nil {
		return out, err
	}
	return out, nil
}

// DirectEncode builds an encoder for a fixed-size message that maps field
// for field onto the fixed-size client struct W.
func DirectEncode[E emu.Message, W any](conv func(E) W) EncodeFunc {
	return func(op emu.Opcode, msg emu.Message) ([]Outgoing, error) {
		in, err := As[E](op, msg)
		if err != nil {
			return nil, err
		}
		w := conv(in)
		data, err := EncodeFixed(&w)
		if err != nil {
			return nil, err
		}
		return []Outgoing{{Op: op, Data: data}}, nil
	}
}

// DirectDecode builds a decoder for a fixed-size client struct W. Buffers of
// any other length are rejected before a single field is read.
func DirectDecode[W any, E emu.Message](conv func(W) E) DecodeFunc {
	return func(op emu.Opcode, data []byte) (emu.Message, error) {
		var w W
		if err := DecodeExact(op, data, &w); err != nil {
			return nil, err
		}
		return conv(w), nil
	}
}
