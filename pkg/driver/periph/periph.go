// Package periph drives the fan PWM and the indicator output through periph.io.
// Pins are addressed by name, e.g. "GPIO18".
package periph

import (
	"context"
	"fmt"

	"github.com/nergy-se/fancontroller/pkg/controller"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// Init initialises periph host drivers. host.Init can safely be called
// multiple times; subsequent calls are no-ops.
func Init() error {
	_, err := host.Init()
	if err != nil {
		return fmt.Errorf("periph: host init: %w", err)
	}
	return nil
}

func lookup(name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("periph: no such pin %q", name)
	}
	return p, nil
}

type Fan struct {
	pin  gpio.PinIO
	freq physic.Frequency
}

// NewFan returns a fan actuator producing a PWM signal at frequencyHz on the named pin.
func NewFan(pinName string, frequencyHz int) (*Fan, error) {
	p, err := lookup(pinName)
	if err != nil {
		return nil, err
	}
	return &Fan{
		pin:  p,
		freq: physic.Frequency(frequencyHz) * physic.Hertz,
	}, nil
}

func (f *Fan) SetDuty(_ context.Context, percent float64) error {
	percent = controller.ClampDuty(percent)
	if percent == 0 {
		return f.pin.Out(gpio.Low)
	}
	duty := gpio.Duty(float64(gpio.DutyMax) * percent / controller.MaxDuty)
	return f.pin.PWM(duty, f.freq)
}

type Toggle struct {
	pin gpio.PinIO
}

func NewToggle(pinName string) (*Toggle, error) {
	p, err := lookup(pinName)
	if err != nil {
		return nil, err
	}
	return &Toggle{pin: p}, nil
}

func (t *Toggle) SetLevel(_ context.Context, on bool) error {
	return t.pin.Out(gpio.Level(on))
}
