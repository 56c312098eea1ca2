package dummy

import (
	"context"
	"sync"

	"github.com/nergy-se/fancontroller/pkg/controller"
	"github.com/nergy-se/fancontroller/pkg/thermistor"
	"github.com/sirupsen/logrus"
)

// Sensor is a simulated thermistor returning a fixed raw sample.
type Sensor struct {
	raw int
	sync.Mutex
}

func NewSensor(tempC float64) *Sensor {
	return &Sensor{raw: thermistor.RawFor(tempC)}
}

func (s *Sensor) RawSample(context.Context) (int, error) {
	s.Lock()
	defer s.Unlock()
	return s.raw, nil
}

func (s *Sensor) SetRaw(raw int) {
	s.Lock()
	s.raw = raw
	s.Unlock()
}

func (s *Sensor) SetTemperature(tempC float64) {
	s.SetRaw(thermistor.RawFor(tempC))
}

// Actuator records the last duty it was given.
type Actuator struct {
	duty float64
	sync.Mutex
}

func (a *Actuator) SetDuty(_ context.Context, percent float64) error {
	percent = controller.ClampDuty(percent)
	a.Lock()
	changed := a.duty != percent
	a.duty = percent
	a.Unlock()
	if changed {
		logrus.Debugf("dummy: SetDuty: %.1f", percent)
	}
	return nil
}

func (a *Actuator) Duty() float64 {
	a.Lock()
	defer a.Unlock()
	return a.duty
}

// Toggle records the last level it was driven to.
type Toggle struct {
	level bool
	calls int
	sync.Mutex
}

func (t *Toggle) SetLevel(_ context.Context, on bool) error {
	logrus.Info("dummy: SetLevel: ", on)
	t.Lock()
	t.level = on
	t.calls++
	t.Unlock()
	return nil
}

func (t *Toggle) Level() bool {
	t.Lock()
	defer t.Unlock()
	return t.level
}

func (t *Toggle) Calls() int {
	t.Lock()
	defer t.Unlock()
	return t.calls
}
