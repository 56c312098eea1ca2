package thermistor

import (
	"errors"
	"math"
)

// Divider and NTC parameters. The thermistor sits on the high side of the
// divider so a higher ADC code means a lower NTC resistance.
const (
	MaxADC = 4095    // 12 bit ADC full scale
	Beta   = 3435.0  // NTC beta constant
	R0     = 10000.0 // NTC resistance at T0
	T0     = 298.15  // reference temperature in kelvin (25C)
	RFixed = 10000.0 // fixed divider resistor

	kelvinOffset = 273.15
)

var (
	ErrZeroSignal = errors.New("thermistor: zero signal")
	ErrOutOfRange = errors.New("thermistor: sample out of range")
)

// ReadTemperature converts a raw ADC sample to degrees celsius using the beta model.
func ReadTemperature(raw int) (float64, error) {
	vRatio := float64(raw) / MaxADC
	if vRatio <= 0 {
		return 0, ErrZeroSignal
	}
	if raw > MaxADC {
		return 0, ErrOutOfRange
	}

	rNTC := RFixed * (1.0/vRatio - 1.0)
	if rNTC <= 0 {
		return 0, ErrOutOfRange
	}

	tempK := 1.0 / (1.0/T0 + (1.0/Beta)*math.Log(rNTC/R0))
	if math.IsNaN(tempK) || math.IsInf(tempK, 0) || tempK <= 0 {
		return 0, ErrOutOfRange
	}
	return tempK - kelvinOffset, nil
}

// RawFor returns the raw ADC sample closest to tempC. Used by the simulated sensor.
func RawFor(tempC float64) int {
	tempK := tempC + kelvinOffset
	rNTC := R0 * math.Exp(Beta*(1.0/tempK-1.0/T0))
	raw := math.Round(MaxADC / (1.0 + rNTC/RFixed))
	switch {
	case math.IsNaN(raw), raw < 0:
		return 0
	case raw > MaxADC:
		return MaxADC
	}
	return int(raw)
}
