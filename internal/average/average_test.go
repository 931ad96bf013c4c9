package average

import (
	"testing"

	"codeberg.org/mutker/windsensor/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingBufferEvictsOldestFirst(t *testing.T) {
	ring, err := NewRingBuffer[float64](3)
	require.NoError(t, err)

	for _, v := range []float64{1, 2, 3, 4} {
		ring.Add(v)
	}

	assert.Equal(t, 3, ring.Len())
	assert.Equal(t, []float64{2, 3, 4}, ring.Values())

	ring.Add(5)
	ring.Add(6)
	assert.Equal(t, []float64{4, 5, 6}, ring.Values())
}

func TestRingBufferPartialFill(t *testing.T) {
	ring, err := NewRingBuffer[int](10)
	require.NoError(t, err)

	assert.Equal(t, 0, ring.Len())
	assert.Empty(t, ring.Values())

	ring.Add(7)
	ring.Add(8)
	assert.Equal(t, 2, ring.Len())
	assert.Equal(t, 10, ring.Cap())
	assert.Equal(t, []int{7, 8}, ring.Values())
}

func TestRingBufferLenNeverExceedsCap(t *testing.T) {
	ring, err := NewRingBuffer[int](4)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		ring.Add(i)
		assert.LessOrEqual(t, ring.Len(), ring.Cap())
	}
	assert.Equal(t, []int{96, 97, 98, 99}, ring.Values())
}

func TestRingBufferCapacityOne(t *testing.T) {
	ring, err := NewRingBuffer[string](1)
	require.NoError(t, err)

	ring.Add("a")
	ring.Add("b")
	assert.Equal(t, []string{"b"}, ring.Values())
}

func TestNewRingBufferInvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		_, err := NewRingBuffer[float64](capacity)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrInvalidArgument))
	}
}

func TestMovingAverage(t *testing.T) {
	avg, err := NewMovingAverage(3)
	require.NoError(t, err)

	avg.Add(10.0)
	avg.Add(20.0)
	avg.Add(30.0)

	got, ok := avg.Average()
	require.True(t, ok)
	assert.Equal(t, 20.0, got)
}

func TestMovingAverageWindowSlides(t *testing.T) {
	avg, err := NewMovingAverage(3)
	require.NoError(t, err)

	for _, v := range []float64{10, 20, 30, 40} {
		avg.Add(v)
	}

	got, ok := avg.Average()
	require.True(t, ok)
	assert.Equal(t, 30.0, got)
	assert.Equal(t, 3, avg.Len())
	assert.Equal(t, 3, avg.Window())
}

func TestMovingAveragePartialWindow(t *testing.T) {
	avg, err := NewMovingAverage(10)
	require.NoError(t, err)

	avg.Add(21.5)
	got, ok := avg.Average()
	require.True(t, ok)
	assert.Equal(t, 21.5, got)

	avg.Add(22.5)
	got, ok = avg.Average()
	require.True(t, ok)
	assert.Equal(t, 22.0, got)
}

func TestMovingAverageEmpty(t *testing.T) {
	avg, err := NewMovingAverage(10)
	require.NoError(t, err)

	got, ok := avg.Average()
	assert.False(t, ok)
	assert.Zero(t, got)
}
