package packet

import (
	"bytes"
	"encoding/binary"
	"math"

	"golang.org/x/text/encoding/charmap"
)

// Writer builds a client packet body. All multi-byte writes are little-endian.
// The buffer grows as needed; read the final length only after writing completes.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 256)}
}

// WriteC writes 1 byte.
func (w *Writer) WriteC(v byte) {
	w.buf = append(w.buf, v)
}

// WriteH writes 2 bytes little-endian.
func (w *Writer) WriteH(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

// WriteD writes 4 bytes little-endian (signed or unsigned via cast).
func (w *Writer) WriteD(v int32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(v))
}

// WriteDU writes 4 bytes little-endian unsigned.
func (w *Writer) WriteDU(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// WriteF writes an IEEE-754 float32.
func (w *Writer) WriteF(v float32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, math.Float32bits(v))
}

// WriteS writes a null-terminated string, converting UTF-8 to Windows-1252.
// Embedded NULs are dropped and runes with no Windows-1252 byte become '?'.
func (w *Writer) WriteS(s string) {
	for _, r := range s {
		if r == 0 {
			continue
		}
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			b = '?'
		}
		w.buf = append(w.buf, b)
	}
	w.buf = append(w.buf, 0)
}

// WriteFixedS writes s into an n-byte zero-padded field, truncating if needed.
func (w *Writer) WriteFixedS(s string, n int) {
	start := len(w.buf)
	w.buf = append(w.buf, make([]byte, n)...)
	copy(w.buf[start:start+n], s)
}

// WriteBytes writes raw bytes.
func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteStruct writes a fixed-size packed struct.
func (w *Writer) WriteStruct(v any) error {
	var b bytes.Buffer
	if err := binary.Write(&b, binary.LittleEndian, v); err != nil {
		return err
	}
	w.buf = append(w.buf, b.Bytes()...)
	return nil
}

// Bytes returns the packet content.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the current length.
func (w *Writer) Len() int {
	return len(w.buf)
}
