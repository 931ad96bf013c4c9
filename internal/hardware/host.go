package hardware

import (
	"sync"

	"codeberg.org/mutker/windsensor/internal/errors"
	"codeberg.org/mutker/windsensor/internal/logger"
	"periph.io/x/periph/host"
)

var (
	hostOnce sync.Once
	hostErr  error
)

// Init loads the periph host drivers. It is safe to call more than once;
// only the first call does any work.
func Init() error {
	hostOnce.Do(func() {
		state, err := host.Init()
		if err != nil {
			hostErr = errors.New().Wrap(ErrInitFailed, err)
			return
		}

		for _, d := range state.Loaded {
			logger.Debug().Str("driver", d.String()).Msg("Loaded host driver")
		}
		for _, f := range state.Failed {
			logger.Debug().Str("driver", f.D.String()).Err(f.Err).Msg("Host driver failed")
		}
	})

	return hostErr
}
