package patch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/eqgo/server/internal/emu"
	"go.uber.org/zap"
)

// OpcodeTable binds logical opcodes to one client version's wire numbers.
type OpcodeTable struct {
	toEQ  map[emu.Opcode]uint16
	toEmu map[uint16]emu.Opcode
}

// Len returns the number of bound opcodes.
func (t *OpcodeTable) Len() int {
	return len(t.toEQ)
}

// ParseOpcodes reads an opcode file: one OP_Name=0x1234 per line, '#' starts
// a comment. Number 0 leaves the opcode unbound. Names this server does not
// know are skipped and returned so the caller can report them.
func ParseOpcodes(r io.Reader) (*OpcodeTable, []string, error) {
	t := &OpcodeTable{
		toEQ:  make(map[emu.Opcode]uint16),
		toEmu: make(map[uint16]emu.Opcode),
	}
	var unknown []string

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, num, ok := strings.Cut(line, "=")
		if !ok {
			return nil, nil, fmt.Errorf("line %d: expected OP_Name=0xNNNN", lineNo)
		}
		name = strings.TrimSpace(name)
		n, err := strconv.ParseUint(strings.TrimSpace(num), 0, 16)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: opcode %s: %w", lineNo, name, err)
		}
		op, known := emu.OpcodeByName(name)
		if !known {
			unknown = append(unknown, name)
			continue
		}
		if n == 0 {
			continue
		}
		if prev, dup := t.toEmu[uint16(n)]; dup {
			return nil, nil, fmt.Errorf("line %d: %#04x bound to both %s and %s", lineNo, n, prev, op)
		}
		t.toEQ[op] = uint16(n)
		t.toEmu[uint16(n)] = op
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	return t, unknown, nil
}

// OpcodeManager holds the active opcode table and swaps it atomically on
// reload. Lookups never see a partially built table.
type OpcodeManager struct {
	path  string
	table atomic.Pointer[OpcodeTable]
	log   *zap.Logger
}

func NewOpcodeManager(log *zap.Logger) *OpcodeManager {
	return &OpcodeManager{log: log}
}

// Load reads path and installs it as the active table.
func (m *OpcodeManager) Load(path string) error {
	t, err := m.read(path)
	if err != nil {
		return err
	}
	m.path = path
	m.table.Store(t)
	m.log.Info("opcodes loaded", zap.String("path", path), zap.Int("count", t.Len()))
	return nil
}

// Reload re-reads the file given to Load. On failure the previous table stays active.
func (m *OpcodeManager) Reload() error {
	if m.path == "" {
		return fmt.Errorf("reload opcodes: nothing loaded")
	}
	t, err := m.read(m.path)
	if err != nil {
		m.log.Error("opcode reload failed, keeping previous table",
			zap.String("path", m.path),
			zap.Error(err),
		)
		return err
	}
	m.table.Store(t)
	m.log.Info("opcodes reloaded", zap.String("path", m.path), zap.Int("count", t.Len()))
	return nil
}

func (m *OpcodeManager) read(path string) (*OpcodeTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load opcodes %s: %w", path, err)
	}
	defer f.Close()

	t, unknown, err := ParseOpcodes(f)
	if err != nil {
		return nil, fmt.Errorf("load opcodes %s: %w", path, err)
	}
	for _, name := range unknown {
		m.log.Warn("unknown opcode name in file", zap.String("path", path), zap.String("name", name))
	}
	return t, nil
}

// Loaded reports whether a table is active.
func (m *OpcodeManager) Loaded() bool {
	return m.table.Load() != nil
}

// EmuToEQ returns the wire number for op, or 0 when unbound.
func (m *OpcodeManager) EmuToEQ(op emu.Opcode) uint16 {
	t := m.table.Load()
	if t == nil {
		return 0
	}
	return t.toEQ[op]
}

// EQToEmu returns the logical opcode for a wire number, or OpUnknown.
func (m *OpcodeManager) EQToEmu(n uint16) emu.Opcode {
	t := m.table.Load()
	if t == nil {
		return emu.OpUnknown
	}
	if op, ok := t.toEmu[n]; ok {
		return op
	}
	return emu.OpUnknown
}

func (m *OpcodeManager) EmuToName(op emu.Opcode) string {
	return op.String()
}

// EQToName names a wire number for diagnostics.
func (m *OpcodeManager) EQToName(n uint16) string {
	op := m.EQToEmu(n)
	if op == emu.OpUnknown {
		return fmt.Sprintf("OP_Unknown(%#04x)", n)
	}
	return op.String()
}
