package net

import (
	"errors"
	"fmt"
	"io"

	"github.com/eqgo/server/internal/patch"
	"go.uber.org/zap"
)

// StreamState is where a client stream is in patch identification.
type StreamState int

const (
	StateIdentifying StreamState = iota
	StateIdentified
	StateRejected
)

func (s StreamState) String() string {
	switch s {
	case StateIdentifying:
		return "Identifying"
	case StateIdentified:
		return "Identified"
	case StateRejected:
		return "Rejected"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// ErrUnidentified is returned once a stream's first packet matched no patch.
var ErrUnidentified = errors.New("client patch not identified")

// Stream reads client frames, picks the translation layer from the leading
// packets and decodes everything after that. Not safe for concurrent use.
type Stream struct {
	r        io.Reader
	id       *patch.Identifier
	state    StreamState
	strategy *patch.Strategy
	sigName  string
	log      *zap.Logger
}

func NewStream(r io.Reader, id *patch.Identifier, log *zap.Logger) *Stream {
	return &Stream{r: r, id: id, log: log}
}

func (s *Stream) State() StreamState { return s.state }

// Strategy returns the identified translation layer, or nil.
func (s *Stream) Strategy() *patch.Strategy { return s.strategy }

// Signature returns the name of the signature that matched.
func (s *Stream) Signature() string { return s.sigName }

// Next reads and decodes the next frame. Frames seen while identifying come
// back with Outcome Passthrough and a nil Message. io.EOF marks the end.
func (s *Stream) Next() (patch.WirePacket, patch.Inbound, error) {
	if s.state == StateRejected {
		return patch.WirePacket{}, patch.Inbound{}, ErrUnidentified
	}
	pkt, err := ReadFrame(s.r)
	if err != nil {
		return pkt, patch.Inbound{}, err
	}

	if s.state == StateIdentifying {
		strategy, name, result := s.id.Identify(pkt)
		switch result {
		case patch.Ignored:
			s.log.Debug("pre-identification packet", zap.Uint16("opcode", pkt.Opcode))
			return pkt, patch.Inbound{Outcome: patch.Passthrough}, nil
		case patch.NoMatch:
			s.state = StateRejected
			s.log.Warn("client patch not identified",
				zap.Uint16("opcode", pkt.Opcode),
				zap.Int("size", len(pkt.Data)),
			)
			return pkt, patch.Inbound{}, ErrUnidentified
		}
		s.state = StateIdentified
		s.strategy = strategy
		s.sigName = name
		s.log = s.log.With(zap.String("patch", strategy.Name()))
		s.log.Info("client patch identified", zap.String("signature", name))
	}
	return pkt, s.strategy.Decode(pkt), nil
}
