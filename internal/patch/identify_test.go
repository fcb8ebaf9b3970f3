package patch

import (
	"testing"

	"github.com/eqgo/server/internal/emu"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestIdentifier(t *testing.T) {
	s := newTestStrategy(t)
	id := NewIdentifier(zap.NewNop())
	id.Register(s,
		Signature{Name: "TEST world", FirstOpcode: emu.OpSendLoginInfo, FirstLength: 4},
		Signature{Name: "TEST zone", FirstOpcode: emu.OpZoneEntry, FirstLength: 2, IgnoreOpcode: emu.OpAckPacket},
	)

	tests := []struct {
		name     string
		pkt      WirePacket
		want     IdentifyResult
		wantName string
	}{
		{"world login", WirePacket{Opcode: 0x0002, Data: make([]byte, 4)}, Matched, "TEST world"},
		{"zone entry", WirePacket{Opcode: 0x0003, Data: make([]byte, 2)}, Matched, "TEST zone"},
		{"ack before zone entry", WirePacket{Opcode: 0x0001}, Ignored, ""},
		{"wrong length", WirePacket{Opcode: 0x0002, Data: make([]byte, 5)}, NoMatch, ""},
		{"unbound opcode", WirePacket{Opcode: 0x4444, Data: make([]byte, 4)}, NoMatch, ""},
		{"known opcode without signature", WirePacket{Opcode: 0x0010, Data: make([]byte, 4)}, NoMatch, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, name, result := id.Identify(tt.pkt)
			assert.Equal(t, tt.want, result)
			assert.Equal(t, tt.wantName, name)
			if tt.want == Matched {
				assert.Same(t, s, got)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestIdentifier_Empty(t *testing.T) {
	id := NewIdentifier(zap.NewNop())
	_, _, result := id.Identify(WirePacket{Opcode: 1})
	assert.Equal(t, NoMatch, result)
}
