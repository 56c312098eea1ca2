package app

import (
	"fmt"

	"github.com/nergy-se/fancontroller/pkg/api/v1/config"
	"github.com/nergy-se/fancontroller/pkg/api/v1/types"
	"github.com/nergy-se/fancontroller/pkg/controller"
	"github.com/nergy-se/fancontroller/pkg/driver/dummy"
	"github.com/nergy-se/fancontroller/pkg/driver/modbusio"
	"github.com/nergy-se/fancontroller/pkg/driver/periph"
	"github.com/nergy-se/fancontroller/pkg/driver/rpio"
	"github.com/nergy-se/fancontroller/pkg/modbusclient"
)

type drivers struct {
	sensor   controller.Sensor
	actuator controller.Actuator
	toggle   controller.Toggle
	closers  []func() error
}

func (d *drivers) Close() error {
	var first error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func newModbusIO(c *config.CliConfig) *modbusio.IO {
	var client modbusclient.Client
	switch types.ModbusTransport(c.ModbusTransport) {
	case types.ModbusTransportRTU:
		client = modbusclient.NewRTU(c.ModbusDevice, c.ModbusBaudRate, byte(c.ModbusSlaveID), c.ModbusTimeoutDuration())
	default:
		client = modbusclient.NewTCP(c.ModbusAddress, byte(c.ModbusSlaveID), c.ModbusTimeoutDuration())
	}
	return modbusio.New(client, uint16(c.ModbusADCReg), uint16(c.ModbusPWMReg), uint16(c.ModbusToggleCoil), uint32(c.PWMWrap))
}

// newDrivers builds the sensor, actuator and toggle drivers selected in c.
// c must have been validated.
func newDrivers(c *config.CliConfig) (*drivers, error) {
	d := &drivers{}

	var mio *modbusio.IO
	if c.UsesModbus() {
		mio = newModbusIO(c)
		d.closers = append(d.closers, mio.Close)
	}

	outputs := map[types.OutputType]bool{
		types.OutputType(c.ActuatorType): true,
		types.OutputType(c.ToggleType):   true,
	}
	if outputs[types.OutputTypePeriph] {
		if err := periph.Init(); err != nil {
			d.Close()
			return nil, err
		}
	}
	if outputs[types.OutputTypeRpio] {
		if err := rpio.Open(); err != nil {
			d.Close()
			return nil, err
		}
		d.closers = append(d.closers, rpio.Close)
	}

	switch types.SensorType(c.SensorType) {
	case types.SensorTypeModbus:
		d.sensor = mio
	default:
		d.sensor = dummy.NewSensor(c.SimulatedTemperature)
	}

	switch types.OutputType(c.ActuatorType) {
	case types.OutputTypeModbus:
		d.actuator = mio
	case types.OutputTypePeriph:
		fan, err := periph.NewFan(fmt.Sprintf("GPIO%d", c.FanPin), c.PWMFrequency)
		if err != nil {
			d.Close()
			return nil, err
		}
		d.actuator = fan
	case types.OutputTypeRpio:
		d.actuator = rpio.NewFan(c.FanPin, c.PWMFrequency, uint32(c.PWMWrap))
	default:
		d.actuator = &dummy.Actuator{}
	}

	switch types.OutputType(c.ToggleType) {
	case types.OutputTypeModbus:
		d.toggle = mio
	case types.OutputTypePeriph:
		toggle, err := periph.NewToggle(fmt.Sprintf("GPIO%d", c.TogglePin))
		if err != nil {
			d.Close()
			return nil, err
		}
		d.toggle = toggle
	case types.OutputTypeRpio:
		d.toggle = rpio.NewToggle(c.TogglePin)
	default:
		d.toggle = &dummy.Toggle{}
	}

	return d, nil
}
