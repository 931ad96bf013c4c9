package temperature

import "codeberg.org/mutker/windsensor/internal/errors"

const (
	ErrInvalidChannel = errors.ErrorCode("adc_invalid_channel")
	ErrReadFailed     = errors.ErrReadSensor
)
