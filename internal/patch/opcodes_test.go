package patch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eqgo/server/internal/emu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseOpcodes(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "patch_TEST.conf"))
	require.NoError(t, err)
	defer f.Close()

	tbl, unknown, err := ParseOpcodes(f)
	require.NoError(t, err)
	assert.Equal(t, 8, tbl.Len())
	assert.Equal(t, []string{"OP_RetiredOpcode"}, unknown)
	assert.Equal(t, uint16(0x0003), tbl.toEQ[emu.OpZoneEntry])
	assert.Equal(t, emu.OpCamp, tbl.toEmu[0x0014])

	_, bound := tbl.toEQ[emu.OpTargetMouse]
	assert.False(t, bound, "0x0000 leaves the opcode unbound")
}

func TestParseOpcodes_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"missing separator", "OP_Camp 0x0001\n", "line 1"},
		{"bad number", "OP_Camp=0xZZ\n", "OP_Camp"},
		{"number too large", "OP_Camp=0x10000\n", "OP_Camp"},
		{"duplicate number", "OP_Camp=0x0001\nOP_Stun=0x0001\n", "bound to both"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseOpcodes(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestOpcodeManager_ReloadKeepsPreviousTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patch_X.conf")
	require.NoError(t, os.WriteFile(path, []byte("OP_Camp=0x0100\n"), 0o644))

	m := NewOpcodeManager(zap.NewNop())
	assert.False(t, m.Loaded())
	require.NoError(t, m.Load(path))
	assert.Equal(t, uint16(0x0100), m.EmuToEQ(emu.OpCamp))

	require.NoError(t, os.WriteFile(path, []byte("OP_Camp=nonsense\n"), 0o644))
	require.Error(t, m.Reload())
	assert.Equal(t, uint16(0x0100), m.EmuToEQ(emu.OpCamp))
	assert.Equal(t, emu.OpCamp, m.EQToEmu(0x0100))

	require.NoError(t, os.WriteFile(path, []byte("OP_Camp=0x0200\n"), 0o644))
	require.NoError(t, m.Reload())
	assert.Equal(t, uint16(0x0200), m.EmuToEQ(emu.OpCamp))
	assert.Equal(t, emu.OpUnknown, m.EQToEmu(0x0100))
}

func TestOpcodeManager_Unloaded(t *testing.T) {
	m := NewOpcodeManager(zap.NewNop())
	assert.Zero(t, m.EmuToEQ(emu.OpCamp))
	assert.Equal(t, emu.OpUnknown, m.EQToEmu(1))
	assert.Contains(t, m.EQToName(1), "OP_Unknown(")
	assert.Error(t, m.Reload())
	assert.Error(t, m.Load(filepath.Join(t.TempDir(), "missing.conf")))
}
