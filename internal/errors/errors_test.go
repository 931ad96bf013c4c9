package errors_test

import (
	stderrors "errors"
	"testing"

	"codeberg.org/mutker/windsensor/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	errFactory := errors.New()

	err := errFactory.New(errors.ErrInvalidInterval)
	assert.Equal(t, "Invalid interval value", err.Error())
	assert.Equal(t, errors.ErrInvalidInterval, err.Code())

	err = errFactory.WithMessage(errors.ErrInvalidConfig, "window must be at least 1")
	assert.Equal(t, "window must be at least 1", err.Error())

	err = errFactory.WithData(errors.ErrInvalidArgument, "channel out of range")
	assert.Equal(t, "Invalid argument provided: channel out of range", err.Error())
}

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrors.New("bus fault")
	err := errors.New().Wrap(errors.ErrReadSensor, cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to read sensor: bus fault", err.Error())
}

func TestHasCode(t *testing.T) {
	errFactory := errors.New()
	inner := errFactory.Wrap(errors.ErrTimeout, stderrors.New("deadline"))
	outer := errFactory.Wrap(errors.ErrOperationFailed, inner)

	assert.True(t, errors.HasCode(outer, errors.ErrOperationFailed))
	assert.True(t, errors.HasCode(outer, errors.ErrTimeout))
	assert.False(t, errors.HasCode(outer, errors.ErrInvalidConfig))
	assert.False(t, errors.HasCode(stderrors.New("plain"), errors.ErrInternal))
	assert.False(t, errors.HasCode(nil, errors.ErrInternal))
}

func TestUnknownCodeFallsBackToCode(t *testing.T) {
	err := errors.New().New(errors.ErrorCode("spi_custom_failure"))
	assert.Equal(t, "spi_custom_failure", err.Error())
}

func TestLifecycleErrorsCarryCause(t *testing.T) {
	errFactory := errors.New()
	cause := stderrors.New("spi port busy")

	tests := []struct {
		code errors.ErrorCode
		want string
	}{
		{errors.ErrInitApp, "Failed to initialize application: spi port busy"},
		{errors.ErrMainLoop, "Error in main loop: spi port busy"},
		{errors.ErrShutdownFailed, "Shutdown failed: spi port busy"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := errFactory.Wrap(tt.code, cause)
			assert.Equal(t, tt.want, err.Error())
			assert.True(t, errors.HasCode(err, tt.code))
			assert.ErrorIs(t, err, cause)
		})
	}
}
