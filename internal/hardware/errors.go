package hardware

import "codeberg.org/mutker/windsensor/internal/errors"

const (
	// Initialization Errors
	ErrInitFailed = errors.ErrorCode("hardware_init_failed")

	// GPIO Errors
	ErrPinNotFound     = errors.ErrorCode("gpio_pin_not_found")
	ErrPinConfigFailed = errors.ErrorCode("gpio_config_failed")

	// SPI Errors
	ErrSPIOpenFailed     = errors.ErrorCode("spi_open_failed")
	ErrSPIConnectFailed  = errors.ErrorCode("spi_connect_failed")
	ErrSPITransferFailed = errors.ErrorCode("spi_transfer_failed")
	ErrSPICloseFailed    = errors.ErrorCode("spi_close_failed")
)
