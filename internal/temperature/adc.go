package temperature

import (
	"codeberg.org/mutker/windsensor/internal/errors"
	"codeberg.org/mutker/windsensor/internal/hardware"
)

const (
	adcChannels = 8
	adcMaxValue = 1023

	startBit   = 0x01
	singleEnd  = 0x08
	txDontCare = 0x00
)

// MCP3008 reads a 10-bit single-ended conversion over a duplex transport.
type MCP3008 struct {
	bus hardware.Transport
}

func NewMCP3008(bus hardware.Transport) *MCP3008 {
	return &MCP3008{bus: bus}
}

// ReadChannel returns the raw conversion of channel (0..7), in [0, 1023].
func (m *MCP3008) ReadChannel(channel int) (int, error) {
	errFactory := errors.New()

	if channel < 0 || channel >= adcChannels {
		return 0, errFactory.WithData(ErrInvalidChannel, channel)
	}

	// start bit, then single-ended mode and channel in the high nibble; the
	// third byte only clocks out the low data bits
	tx := [3]byte{startBit, byte((singleEnd + channel) << 4), txDontCare}
	var rx [3]byte

	if err := m.bus.Tx(tx[:], rx[:]); err != nil {
		return 0, errFactory.Wrap(ErrReadFailed, err)
	}

	return decode(rx), nil
}

// decode keeps the two low bits of the second byte and all of the third.
func decode(rx [3]byte) int {
	return int(rx[1]&0x03)<<8 | int(rx[2])
}
