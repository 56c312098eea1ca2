package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nergy-se/fancontroller/pkg/alarm"
	"github.com/nergy-se/fancontroller/pkg/state"
	"github.com/nergy-se/fancontroller/pkg/thermistor"
	"github.com/sirupsen/logrus"
)

const (
	AlarmSensorFault = "sensor fault"
	AlarmTemperature = "critical temperature"
)

var ErrSensorFault = errors.New("sensor fault")

type Loop struct {
	sensor    Sensor
	actuator  Actuator
	store     *state.Store
	publisher Publisher
	alarms    *alarm.ActiveAlarms

	tickInterval   time.Duration
	reportInterval time.Duration
}

// NewLoop creates a control loop. publisher may be nil.
func NewLoop(sensor Sensor, actuator Actuator, store *state.Store, publisher Publisher, tickInterval, reportInterval time.Duration) *Loop {
	return &Loop{
		sensor:         sensor,
		actuator:       actuator,
		store:          store,
		publisher:      publisher,
		alarms:         &alarm.ActiveAlarms{},
		tickInterval:   tickInterval,
		reportInterval: reportInterval,
	}
}

// Alarms returns the currently active alarm descriptions.
func (l *Loop) Alarms() []string {
	return l.alarms.List()
}

// Tick runs one sample, convert, evaluate, actuate cycle. A sensor fault leaves
// the state untouched and is returned wrapped in ErrSensorFault.
func (l *Loop) Tick(ctx context.Context) error {
	raw, err := l.sensor.RawSample(ctx)
	if err != nil {
		l.sensorFault()
		return fmt.Errorf("%w: error reading sample: %w", ErrSensorFault, err)
	}

	temp, err := thermistor.ReadTemperature(raw)
	if err != nil {
		l.sensorFault()
		return fmt.Errorf("%w: raw %d: %w", ErrSensorFault, raw, err)
	}
	if l.alarms.Remove(AlarmSensorFault) {
		logrus.Info("controller: sensor recovered")
	}

	duty, alarmActive := Evaluate(temp)
	l.store.SetReading(temp, duty, alarmActive)
	l.trackTemperatureAlarm(alarmActive, temp)

	err = l.actuator.SetDuty(ctx, ClampDuty(duty))
	if err != nil {
		return fmt.Errorf("error setting duty %.1f: %w", duty, err)
	}
	return nil
}

func (l *Loop) sensorFault() {
	if l.alarms.Add(AlarmSensorFault) {
		logrus.Warn("controller: sensor fault, keeping last reading")
	}
}

func (l *Loop) trackTemperatureAlarm(active bool, temp float64) {
	if active {
		if l.alarms.Add(AlarmTemperature) {
			logrus.WithField("temperature", temp).Warn("controller: alarm raised")
		}
		return
	}
	if l.alarms.Remove(AlarmTemperature) {
		logrus.WithField("temperature", temp).Info("controller: alarm cleared")
	}
}

// Run ticks until ctx is done and reports state on the slower report interval.
func (l *Loop) Run(ctx context.Context) {
	tick := time.NewTicker(l.tickInterval)
	defer tick.Stop()
	report := time.NewTicker(l.reportInterval)
	defer report.Stop()

	l.runTick(ctx)
	logrus.Debug("controller: loop started, tick ", l.tickInterval, " report ", l.reportInterval)
	for {
		select {
		case <-tick.C:
			l.runTick(ctx)
		case <-report.C:
			l.report()
		case <-ctx.Done():
			return
		}
	}
}

func (l *Loop) runTick(ctx context.Context) {
	err := l.Tick(ctx)
	if err == nil {
		return
	}
	if errors.Is(err, ErrSensorFault) {
		logrus.Debug(err)
		return
	}
	logrus.Error(err)
}

func (l *Loop) report() {
	s := l.store.Get()
	logrus.Infof("temp: %.2f °C | duty: %.1f%%", s.TemperatureC, s.DutyPercent)
	if s.AlarmActive {
		logrus.Warn("ALARM! critical temperature")
	}

	if l.publisher == nil {
		return
	}
	err := l.publisher.Publish(s)
	if err != nil {
		logrus.Warnf("controller: error publishing state: %s", err)
	}
}
