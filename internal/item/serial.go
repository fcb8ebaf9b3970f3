package item

import "sync/atomic"

// MaxSerial is the highest serial number handed out before wrapping to 1.
const MaxSerial int32 = 2_000_000_000

// SerialGenerator hands out item instance serial numbers. The zero value is
// ready to use and starts at 1. Safe for concurrent use.
type SerialGenerator struct {
	last atomic.Int32
}

// NewSerialGenerator returns a generator whose next value follows last.
func NewSerialGenerator(last int32) *SerialGenerator {
	g := &SerialGenerator{}
	g.last.Store(last)
	return g
}

// Next returns the next serial number, wrapping from MaxSerial back to 1.
func (g *SerialGenerator) Next() int32 {
	for {
		cur := g.last.Load()
		next := cur + 1
		if cur >= MaxSerial || next <= 0 {
			next = 1
		}
		if g.last.CompareAndSwap(cur, next) {
			return next
		}
	}
}

var serials SerialGenerator

// NextSerial draws from the process-wide serial generator.
func NextSerial() int32 {
	return serials.Next()
}
