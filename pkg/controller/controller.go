package controller

import (
	"context"
	"math"

	"github.com/nergy-se/fancontroller/pkg/state"
)

// Policy thresholds in celsius.
const (
	RampStart      = 40.0
	RampEnd        = 60.0
	MaxDuty        = 100.0
	DefaultPWMWrap = 4095
)

// Sensor returns the latest raw ADC sample. It must not block for long.
type Sensor interface {
	RawSample(ctx context.Context) (int, error)
}

// Actuator drives the fan PWM output. Implementations clamp to [0,100].
type Actuator interface {
	SetDuty(ctx context.Context, percent float64) error
}

// Toggle drives a discrete output high or low.
type Toggle interface {
	SetLevel(ctx context.Context, on bool) error
}

// Publisher ships state snapshots somewhere for observability.
type Publisher interface {
	Publish(s state.Snapshot) error
}

// Evaluate maps a temperature to a fan duty and alarm flag.
// Both 40 and 60 belong to the ramp, only values above 60 raise the alarm.
func Evaluate(tempC float64) (float64, bool) {
	if tempC >= RampStart && tempC <= RampEnd {
		return (tempC - RampStart) / (RampEnd - RampStart) * MaxDuty, false
	}
	if tempC > RampEnd {
		return MaxDuty, true
	}
	return 0, false // also NaN
}

func ClampDuty(percent float64) float64 {
	if math.IsNaN(percent) || percent < 0 {
		return 0
	}
	if percent > MaxDuty {
		return MaxDuty
	}
	return percent
}

// PWMLevel quantises a duty percentage to a counter level for a PWM with the given wrap value.
func PWMLevel(percent float64, wrap uint32) uint32 {
	return uint32(ClampDuty(percent) / MaxDuty * float64(wrap))
}
