package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterReader_Fields(t *testing.T) {
	w := NewWriter()
	w.WriteC(7)
	w.WriteH(0x1234)
	w.WriteD(-2)
	w.WriteDU(0xdeadbeef)
	w.WriteF(1.5)
	w.WriteS("Café")
	w.WriteFixedS("abc", 5)

	r := NewReader(w.Bytes())
	assert.Equal(t, byte(7), r.ReadC())
	assert.Equal(t, uint16(0x1234), r.ReadH())
	assert.Equal(t, int32(-2), r.ReadD())
	assert.Equal(t, uint32(0xdeadbeef), r.ReadDU())
	assert.Equal(t, float32(1.5), r.ReadF())
	assert.Equal(t, "Café", r.ReadS())
	assert.Equal(t, []byte{'a', 'b', 'c', 0, 0}, r.ReadBytes(5))
	require.NoError(t, r.Err())
	assert.Zero(t, r.Remaining())
}

func TestWriter_WriteSEncodesCP1252(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []byte
	}{
		{"latin-1", "é", []byte{0xe9, 0}},
		{"cp1252 only", "€", []byte{0x80, 0}},
		{"empty", "", []byte{0}},
		{"embedded nul dropped", "A\x00B", []byte{'A', 'B', 0}},
		{"only nuls", "\x00\x00", []byte{0}},
		{"unmappable rune", "日", []byte{'?', 0}},
		{"mixed", "Axe 斧 é", []byte{'A', 'x', 'e', ' ', '?', ' ', 0xe9, 0}},
		{"invalid utf-8", "a\xffb", []byte{'a', '?', 'b', 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter()
			w.WriteS(tt.in)
			assert.Equal(t, tt.want, w.Bytes())
		})
	}
}

func TestWriter_WriteSKeepsFollowingFields(t *testing.T) {
	w := NewWriter()
	w.WriteS("Rusty\x00Dagger")
	w.WriteDU(42)

	r := NewReader(w.Bytes())
	assert.Equal(t, "RustyDagger", r.ReadS())
	assert.Equal(t, uint32(42), r.ReadDU())
	require.NoError(t, r.Err())
	assert.Zero(t, r.Remaining())
}

func TestReader_ShortReadIsSticky(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})
	assert.Equal(t, uint32(0), r.ReadDU())
	assert.ErrorIs(t, r.Err(), ErrShortRead)

	// Later reads fail even if enough bytes remain for them.
	assert.Equal(t, byte(0), r.ReadC())
	assert.Equal(t, 3, r.Remaining())
}

func TestReader_Unterminated(t *testing.T) {
	r := NewReader([]byte{'h', 'i'})
	assert.Equal(t, "", r.ReadS())
	assert.ErrorIs(t, r.Err(), ErrUnterminated)
}

func TestReader_Skip(t *testing.T) {
	r := NewReader([]byte{0, 0, 9})
	r.Skip(2)
	assert.Equal(t, byte(9), r.ReadC())
	r.Skip(1)
	assert.ErrorIs(t, r.Err(), ErrShortRead)
}

func TestReaderWriter_Struct(t *testing.T) {
	type pair struct {
		A uint16
		B int32
	}
	w := NewWriter()
	require.NoError(t, w.WriteStruct(pair{A: 3, B: -1}))
	assert.Equal(t, 6, w.Len())

	var got pair
	r := NewReader(w.Bytes())
	require.NoError(t, r.ReadStruct(&got))
	assert.Equal(t, pair{A: 3, B: -1}, got)

	assert.ErrorIs(t, NewReader([]byte{1}).ReadStruct(&got), ErrShortRead)
}
