package hardware

import (
	"sync"

	"codeberg.org/mutker/windsensor/internal/errors"
	"go.uber.org/multierr"
	"periph.io/x/periph/conn/physic"
	"periph.io/x/periph/conn/spi"
	"periph.io/x/periph/conn/spi/spireg"
)

const (
	spiClock = 3600 * physic.KiloHertz
	spiMode  = spi.Mode0
	spiBits  = 8
)

// SPI is a connected SPI device on the bus/chip-select named at open time.
type SPI struct {
	port spi.PortCloser
	conn Transport
	mu   sync.Mutex
}

// OpenSPI opens portName (for example "SPI0.0") at 3.6 MHz, mode 0, 8 bits.
func OpenSPI(portName string) (*SPI, error) {
	errFactory := errors.New()

	port, err := spireg.Open(portName)
	if err != nil {
		return nil, errFactory.Wrap(ErrSPIOpenFailed, err)
	}

	conn, err := port.Connect(spiClock, spiMode, spiBits)
	if err != nil {
		err = multierr.Append(err, port.Close())
		return nil, errFactory.Wrap(ErrSPIConnectFailed, err)
	}

	return &SPI{port: port, conn: conn}, nil
}

func (s *SPI) Tx(w, r []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.conn.Tx(w, r); err != nil {
		return errors.New().Wrap(ErrSPITransferFailed, err)
	}

	return nil
}

func (s *SPI) Close() error {
	if err := s.port.Close(); err != nil {
		return errors.New().Wrap(ErrSPICloseFailed, err)
	}
	return nil
}
