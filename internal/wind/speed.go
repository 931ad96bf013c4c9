package wind

const (
	pulsesPerCount = 2 // two signals per rotation

	speedOffset = 1.761
	speedFactor = 3.013
)

// Speed converts the falling edges counted in one second to km/h.
// Values at or below the offset mean the cups are not turning and map to 0.
func Speed(count uint64) float64 {
	pulses := float64(count) * pulsesPerCount

	speed := speedOffset/(1+pulses) + speedFactor*pulses
	if speed <= speedOffset {
		return 0
	}

	return speed
}
