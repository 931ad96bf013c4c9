package report

import "codeberg.org/mutker/windsensor/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig    = errors.ErrInvalidConfig
	ErrUnknownTransport = errors.ErrorCode("report_unknown_transport")

	// Delivery Errors
	ErrMarshalFailed    = errors.ErrorCode("report_marshal_failed")
	ErrRequestFailed    = errors.ErrorCode("report_request_failed")
	ErrUnexpectedStatus = errors.ErrorCode("report_unexpected_status")
	ErrPublishFailed    = errors.ErrorCode("report_publish_failed")
	ErrReporterPanic    = errors.ErrorCode("report_reporter_panic")

	// Operation Errors
	ErrOperationTimeout = errors.ErrTimeout
)
