package patch

import (
	"errors"
	"fmt"

	"github.com/eqgo/server/internal/emu"
)

var (
	// ErrSize matches every *SizeError.
	ErrSize = errors.New("packet size mismatch")
	// ErrUnknownSize is returned by size-keyed unions when no variant matches.
	ErrUnknownSize = errors.New("unrecognized packet size")
	// ErrNoOpcode means the active opcode table has no number for a message.
	ErrNoOpcode = errors.New("opcode not bound")
	// ErrWrongMessage means a translator received a message type it cannot handle.
	ErrWrongMessage = errors.New("unexpected message type")
)

// SizeError reports a buffer whose length does not match its layout.
type SizeError struct {
	Op       emu.Opcode
	Expected int
	Actual   int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("%s: size %d, expected %d", e.Op, e.Actual, e.Expected)
}

func (e *SizeError) Is(target error) bool {
	return target == ErrSize
}

// WrongMessage builds the error a translator returns for a message type it does not handle.
func WrongMessage(op emu.Opcode, msg emu.Message) error {
	return fmt.Errorf("%s: %w %T", op, ErrWrongMessage, msg)
}
