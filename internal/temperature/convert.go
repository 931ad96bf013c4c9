package temperature

const (
	adcReferenceMillivolts = 5000.0
	adcSteps               = 1024.0

	sensorOffsetMillivolts = 500.0
	millivoltsPerDegree    = 10.0
)

// Millivolts converts a raw 10-bit reading at a 5 V reference.
func Millivolts(raw int) float64 {
	return float64(raw) * (adcReferenceMillivolts / adcSteps)
}

// Celsius converts a raw reading of a 10 mV/°C sensor with a 500 mV offset.
func Celsius(raw int) float64 {
	return (Millivolts(raw) - sensorOffsetMillivolts) / millivoltsPerDegree
}

func Fahrenheit(celsius float64) float64 {
	return celsius*9.0/5.0 + 32
}
