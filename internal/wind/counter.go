package wind

import (
	"sync/atomic"

	"codeberg.org/mutker/windsensor/internal/hardware"
)

// PulseCounter accumulates anemometer pulses between samples. Increment and
// Drain may run on different goroutines.
type PulseCounter struct {
	count atomic.Uint64
}

func (c *PulseCounter) Increment() {
	c.count.Add(1)
}

// Drain returns the pulses counted since the previous Drain and resets the
// count to zero in the same atomic step.
func (c *PulseCounter) Drain() uint64 {
	return c.count.Swap(0)
}

// HandleEdge counts falling edges only.
func (c *PulseCounter) HandleEdge(edge hardware.Edge) {
	if edge == hardware.FallingEdge {
		c.Increment()
	}
}
