package net

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/eqgo/server/internal/patch"
)

// frameHeader is the length word plus the opcode word.
const frameHeader = 4

// MaxFrame is the largest frame, header included.
const MaxFrame = 0xFFFF

// ReadFrame reads one captured client packet from r.
// Wire format: [2 bytes LE: total length including header][2 bytes LE: opcode][payload].
// io.EOF is returned unwrapped when r ends cleanly between frames.
func ReadFrame(r io.Reader) (patch.WirePacket, error) {
	var header [frameHeader]byte
	if _, err := io.ReadFull(r, header[:2]); err != nil {
		if err == io.EOF {
			return patch.WirePacket{}, io.EOF
		}
		return patch.WirePacket{}, fmt.Errorf("read frame header: %w", err)
	}
	if _, err := io.ReadFull(r, header[2:]); err != nil {
		return patch.WirePacket{}, fmt.Errorf("read frame header: %w", err)
	}

	totalLen := int(binary.LittleEndian.Uint16(header[0:2]))
	if totalLen < frameHeader {
		return patch.WirePacket{}, fmt.Errorf("invalid frame length: %d", totalLen)
	}

	pkt := patch.WirePacket{
		Opcode: binary.LittleEndian.Uint16(header[2:4]),
		Data:   make([]byte, totalLen-frameHeader),
	}
	if _, err := io.ReadFull(r, pkt.Data); err != nil {
		return patch.WirePacket{}, fmt.Errorf("read frame payload (%d bytes): %w", len(pkt.Data), err)
	}
	return pkt, nil
}

// WriteFrame writes one client packet to w in capture format.
func WriteFrame(w io.Writer, pkt patch.WirePacket) error {
	totalLen := len(pkt.Data) + frameHeader
	if totalLen > MaxFrame {
		return fmt.Errorf("frame too large: %d bytes", totalLen)
	}
	var header [frameHeader]byte
	binary.LittleEndian.PutUint16(header[0:2], uint16(totalLen))
	binary.LittleEndian.PutUint16(header[2:4], pkt.Opcode)

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("write frame header: %w", err)
	}
	if _, err := w.Write(pkt.Data); err != nil {
		return fmt.Errorf("write frame payload: %w", err)
	}
	return nil
}
