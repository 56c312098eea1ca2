package thermistor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadTemperature(t *testing.T) {
	var tests = []struct {
		name     string
		given    int
		expected float64
	}{
		{name: "midpoint is 25C", given: 2048, expected: 25.0},
		{name: "45C", given: 2758, expected: 45.0},
		{name: "20C", given: 1847, expected: 20.0},
		{name: "65C", given: 3261, expected: 65.0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			actual, err := ReadTemperature(tt.given)
			assert.NoError(t, err)
			assert.InDelta(t, tt.expected, actual, 0.05)
		})
	}
}

func TestReadTemperatureErrors(t *testing.T) {
	_, err := ReadTemperature(0)
	assert.ErrorIs(t, err, ErrZeroSignal)

	_, err = ReadTemperature(-12)
	assert.ErrorIs(t, err, ErrZeroSignal)

	_, err = ReadTemperature(MaxADC) // zero NTC resistance, ln(0)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = ReadTemperature(MaxADC + 1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestReadTemperatureMonotonic(t *testing.T) {
	prev, err := ReadTemperature(1)
	assert.NoError(t, err)
	for raw := 2; raw < MaxADC; raw++ {
		cur, err := ReadTemperature(raw)
		if !assert.NoError(t, err, "raw %d", raw) {
			return
		}
		// NTC resistance falls as the code rises, so temperature rises.
		if !assert.Greater(t, cur, prev, "raw %d", raw) {
			return
		}
		prev = cur
	}
}

func TestReadTemperatureDeterministic(t *testing.T) {
	a, errA := ReadTemperature(3000)
	b, errB := ReadTemperature(3000)
	assert.NoError(t, errA)
	assert.NoError(t, errB)
	assert.Equal(t, a, b)
}

func TestRawFor(t *testing.T) {
	for _, temp := range []float64{0, 20, 25, 40, 45, 60, 65, 80} {
		actual, err := ReadTemperature(RawFor(temp))
		assert.NoError(t, err)
		assert.InDelta(t, temp, actual, 0.2, "temp %v", temp)
	}
	assert.Equal(t, 2048, RawFor(25))
	assert.Equal(t, 2758, RawFor(45))
}
