package hardware

// Edge is the direction of a digital input transition.
type Edge int

const (
	RisingEdge Edge = iota + 1
	FallingEdge
)

func (e Edge) String() string {
	switch e {
	case RisingEdge:
		return "rising"
	case FallingEdge:
		return "falling"
	default:
		return "none"
	}
}

// EdgeHandler receives debounced transitions of an input pin.
type EdgeHandler func(Edge)

// Transport is a synchronous full-duplex serial channel. Tx writes w and
// fills r with the bytes clocked in at the same time; len(w) == len(r).
type Transport interface {
	Tx(w, r []byte) error
}
