package packet

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"golang.org/x/text/encoding/charmap"
)

var (
	ErrShortRead    = errors.New("not enough data")
	ErrUnterminated = errors.New("unterminated string")
)

// Reader reads client packet fields. Every read is bounds checked: once a
// read runs past the end, it and all later reads return zero values and Err
// reports the first failure.
type Reader struct {
	data []byte
	off  int
	err  error
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

func (r *Reader) need(n int, what string) bool {
	if r.err != nil {
		return false
	}
	if n < 0 || r.off+n > len(r.data) {
		r.err = fmt.Errorf("%s: %w (pos=%d, need=%d, len=%d)", what, ErrShortRead, r.off, n, len(r.data))
		return false
	}
	return true
}

// ReadC reads 1 unsigned byte.
func (r *Reader) ReadC() byte {
	if !r.need(1, "ReadC") {
		return 0
	}
	v := r.data[r.off]
	r.off++
	return v
}

// ReadH reads 2 bytes as little-endian uint16.
func (r *Reader) ReadH() uint16 {
	if !r.need(2, "ReadH") {
		return 0
	}
	v := binary.LittleEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v
}

// ReadD reads 4 bytes as little-endian int32.
func (r *Reader) ReadD() int32 {
	return int32(r.ReadDU())
}

// ReadDU reads 4 bytes as little-endian uint32.
func (r *Reader) ReadDU() uint32 {
	if !r.need(4, "ReadDU") {
		return 0
	}
	v := binary.LittleEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v
}

// ReadF reads an IEEE-754 float32.
func (r *Reader) ReadF() float32 {
	return math.Float32frombits(r.ReadDU())
}

// ReadS reads a null-terminated Windows-1252 string and returns UTF-8.
func (r *Reader) ReadS() string {
	if r.err != nil {
		return ""
	}
	end := bytes.IndexByte(r.data[r.off:], 0)
	if end < 0 {
		r.err = fmt.Errorf("ReadS: %w (pos=%d, len=%d)", ErrUnterminated, r.off, len(r.data))
		return ""
	}
	raw := r.data[r.off : r.off+end]
	r.off += end + 1
	return cp1252ToUTF8(raw)
}

// cp1252ToUTF8 converts client text to UTF-8. Pure ASCII passes through unchanged.
func cp1252ToUTF8(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	allASCII := true
	for _, b := range raw {
		if b >= 0x80 {
			allASCII = false
			break
		}
	}
	if allASCII {
		return string(raw)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

// ReadBytes reads n raw bytes.
func (r *Reader) ReadBytes(n int) []byte {
	if !r.need(n, "ReadBytes") {
		return nil
	}
	b := make([]byte, n)
	copy(b, r.data[r.off:r.off+n])
	r.off += n
	return b
}

// Skip advances past n bytes.
func (r *Reader) Skip(n int) {
	if r.need(n, "Skip") {
		r.off += n
	}
}

// ReadStruct reads a fixed-size packed struct into v.
func (r *Reader) ReadStruct(v any) error {
	n := binary.Size(v)
	if n < 0 {
		return fmt.Errorf("ReadStruct: %T has no fixed size", v)
	}
	if !r.need(n, "ReadStruct") {
		return r.err
	}
	if err := binary.Read(bytes.NewReader(r.data[r.off:r.off+n]), binary.LittleEndian, v); err != nil {
		r.err = err
		return err
	}
	r.off += n
	return nil
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

// Err returns the first read failure, if any.
func (r *Reader) Err() error {
	return r.err
}
