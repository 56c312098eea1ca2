// Package rpio drives the fan and indicator through /dev/gpiomem using go-rpio.
// Only the hardware PWM capable pins (12, 13, 18, 19) can drive the fan.
package rpio

import (
	"context"
	"fmt"

	"github.com/nergy-se/fancontroller/pkg/controller"
	gorpio "github.com/stianeikeland/go-rpio/v4"
)

func Open() error {
	err := gorpio.Open()
	if err != nil {
		return fmt.Errorf("rpio: open: %w", err)
	}
	return nil
}

func Close() error {
	return gorpio.Close()
}

// The PWM clock go-rpio can derive from the 19.2 MHz oscillator with a
// divisor between 2 and 4095.
const (
	MinPWMClock = 4688
	MaxPWMClock = 9600000
)

type Fan struct {
	pin   gorpio.Pin
	cycle uint32
}

// NewFan configures pin for hardware PWM at frequencyHz. The cycle is wrap
// counts unless that pushes the PWM clock outside MinPWMClock-MaxPWMClock,
// then it is shortened or stretched to fit.
func NewFan(pin int, frequencyHz int, wrap uint32) *Fan {
	if wrap == 0 {
		wrap = controller.DefaultPWMWrap
	}
	clock, cycle := pwmTiming(frequencyHz, wrap)
	p := gorpio.Pin(pin)
	p.Pwm()
	p.Freq(clock)
	p.DutyCycle(0, cycle)
	return &Fan{pin: p, cycle: cycle}
}

// pwmTiming returns the PWM clock and cycle length in counts giving
// frequencyHz. frequencyHz must be within 1-MaxPWMClock/2.
func pwmTiming(frequencyHz int, wrap uint32) (int, uint32) {
	cycle := wrap
	if frequencyHz*int(cycle) > MaxPWMClock {
		cycle = uint32(MaxPWMClock / frequencyHz)
	}
	if frequencyHz*int(cycle) < MinPWMClock {
		cycle = uint32((MinPWMClock + frequencyHz - 1) / frequencyHz)
	}
	return frequencyHz * int(cycle), cycle
}

func (f *Fan) SetDuty(_ context.Context, percent float64) error {
	f.pin.DutyCycle(controller.PWMLevel(percent, f.cycle), f.cycle)
	return nil
}

type Toggle struct {
	pin gorpio.Pin
}

func NewToggle(pin int) *Toggle {
	p := gorpio.Pin(pin)
	p.Output()
	return &Toggle{pin: p}
}

func (t *Toggle) SetLevel(_ context.Context, on bool) error {
	if on {
		t.pin.High()
		return nil
	}
	t.pin.Low()
	return nil
}
