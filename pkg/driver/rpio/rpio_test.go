package rpio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPwmTiming(t *testing.T) {
	var tests = []struct {
		name          string
		frequencyHz   int
		wrap          uint32
		expectedClock int
		expectedCycle uint32
	}{
		{name: "fan default shortens cycle", frequencyHz: 25000, wrap: 4095, expectedClock: 9600000, expectedCycle: 384},
		{name: "fits as is", frequencyHz: 1000, wrap: 4095, expectedClock: 4095000, expectedCycle: 4095},
		{name: "slow pwm stretches cycle", frequencyHz: 1, wrap: 100, expectedClock: 4688, expectedCycle: 4688},
		{name: "highest frequency", frequencyHz: MaxPWMClock / 2, wrap: 4095, expectedClock: MaxPWMClock, expectedCycle: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock, cycle := pwmTiming(tt.frequencyHz, tt.wrap)
			assert.Equal(t, tt.expectedClock, clock)
			assert.Equal(t, tt.expectedCycle, cycle)
			assert.GreaterOrEqual(t, clock, MinPWMClock)
			assert.LessOrEqual(t, clock, MaxPWMClock)
			assert.Equal(t, tt.frequencyHz, clock/int(cycle))
		})
	}
}
