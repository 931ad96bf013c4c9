package average

import "sync"

// MovingAverage is the arithmetic mean over the last N added values.
type MovingAverage struct {
	ring *RingBuffer[float64]
	mu   sync.Mutex
}

func NewMovingAverage(window int) (*MovingAverage, error) {
	ring, err := NewRingBuffer[float64](window)
	if err != nil {
		return nil, err
	}

	return &MovingAverage{ring: ring}, nil
}

func (m *MovingAverage) Add(value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ring.Add(value)
}

// Average returns the mean of the held values. ok is false when no value
// has been added yet.
func (m *MovingAverage) Average() (avg float64, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.ring.Len()
	if n == 0 {
		return 0, false
	}

	var sum float64
	m.ring.Each(func(v float64) {
		sum += v
	})

	return sum / float64(n), true
}

// Len returns the number of samples currently in the window.
func (m *MovingAverage) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ring.Len()
}

// Window returns the configured window size.
func (m *MovingAverage) Window() int {
	return m.ring.Cap()
}
