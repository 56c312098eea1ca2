package controller

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	var tests = []struct {
		name          string
		given         float64
		expectedDuty  float64
		expectedAlarm bool
	}{
		{name: "cold", given: 25.0, expectedDuty: 0, expectedAlarm: false},
		{name: "just below ramp", given: 39.999, expectedDuty: 0, expectedAlarm: false},
		{name: "ramp start", given: 40.0, expectedDuty: 0, expectedAlarm: false},
		{name: "ramp middle", given: 50.0, expectedDuty: 50, expectedAlarm: false},
		{name: "45C", given: 45.0, expectedDuty: 25, expectedAlarm: false},
		{name: "ramp end", given: 60.0, expectedDuty: 100, expectedAlarm: false},
		{name: "just above ramp", given: 60.0001, expectedDuty: 100, expectedAlarm: true},
		{name: "hot", given: 90.0, expectedDuty: 100, expectedAlarm: true},
		{name: "negative", given: -20.0, expectedDuty: 0, expectedAlarm: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			duty, alarm := Evaluate(tt.given)
			assert.InDelta(t, tt.expectedDuty, duty, 1e-9)
			assert.Equal(t, tt.expectedAlarm, alarm)
		})
	}
}

func TestEvaluateRangeAndAlarm(t *testing.T) {
	for temp := -50.0; temp <= 150.0; temp += 0.037 {
		duty, alarm := Evaluate(temp)
		assert.GreaterOrEqual(t, duty, 0.0)
		assert.LessOrEqual(t, duty, 100.0)
		assert.Equal(t, temp > 60.0, alarm, "temp %v", temp)
	}

	duty, alarm := Evaluate(math.NaN())
	assert.Equal(t, 0.0, duty)
	assert.False(t, alarm)

	duty, alarm = Evaluate(math.Inf(1))
	assert.Equal(t, 100.0, duty)
	assert.True(t, alarm)
}

func TestClampDuty(t *testing.T) {
	assert.Equal(t, 0.0, ClampDuty(-3))
	assert.Equal(t, 0.0, ClampDuty(math.NaN()))
	assert.Equal(t, 42.5, ClampDuty(42.5))
	assert.Equal(t, 100.0, ClampDuty(250))
}

func TestPWMLevel(t *testing.T) {
	assert.Equal(t, uint32(0), PWMLevel(0, DefaultPWMWrap))
	assert.Equal(t, uint32(1023), PWMLevel(25, DefaultPWMWrap))
	assert.Equal(t, uint32(4095), PWMLevel(100, DefaultPWMWrap))
	assert.Equal(t, uint32(4095), PWMLevel(120, DefaultPWMWrap))
}
