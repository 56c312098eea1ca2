package app

import (
	"context"
	"testing"

	"github.com/koding/multiconfig"
	"github.com/nergy-se/fancontroller/pkg/api/v1/config"
	"github.com/nergy-se/fancontroller/pkg/driver/dummy"
	"github.com/nergy-se/fancontroller/pkg/driver/modbusio"
	"github.com/stretchr/testify/assert"
)

func testConfig(t *testing.T) *config.CliConfig {
	c := &config.CliConfig{}
	err := (&multiconfig.TagLoader{}).Load(c)
	assert.NoError(t, err)
	return c
}

func TestNewDriversDummy(t *testing.T) {
	c := testConfig(t)
	c.SimulatedTemperature = 45
	assert.NoError(t, c.Validate())

	d, err := newDrivers(c)
	assert.NoError(t, err)
	defer d.Close()

	assert.IsType(t, &dummy.Sensor{}, d.sensor)
	assert.IsType(t, &dummy.Actuator{}, d.actuator)
	assert.IsType(t, &dummy.Toggle{}, d.toggle)
	assert.Empty(t, d.closers)

	raw, err := d.sensor.RawSample(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2758, raw)
}

func TestNewDriversModbusShared(t *testing.T) {
	c := testConfig(t)
	c.SensorType = "modbus"
	c.ActuatorType = "modbus"
	c.ToggleType = "modbus"
	c.ModbusAddress = "127.0.0.1:1"
	assert.NoError(t, c.Validate())

	d, err := newDrivers(c)
	assert.NoError(t, err)

	mio, ok := d.sensor.(*modbusio.IO)
	assert.True(t, ok)
	assert.Same(t, mio, d.actuator)
	assert.Same(t, mio, d.toggle)
	assert.Len(t, d.closers, 1)
	assert.NoError(t, d.Close())
}

func TestDriversCloseReportsFirstError(t *testing.T) {
	var order []int
	d := &drivers{closers: []func() error{
		func() error { order = append(order, 1); return assert.AnError },
		func() error { order = append(order, 2); return nil },
	}}
	assert.ErrorIs(t, d.Close(), assert.AnError)
	assert.Equal(t, []int{2, 1}, order)
}
