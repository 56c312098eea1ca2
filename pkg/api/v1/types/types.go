package types

type SensorType string

var SensorTypeDummy = SensorType("dummy")
var SensorTypeModbus = SensorType("modbus")

// OutputType selects the driver for the fan PWM and the indicator toggle.
type OutputType string

var OutputTypeDummy = OutputType("dummy")
var OutputTypePeriph = OutputType("periph")
var OutputTypeRpio = OutputType("rpio")
var OutputTypeModbus = OutputType("modbus")

// ModbusTransport is how the Modbus I/O module is reached.
type ModbusTransport string

var ModbusTransportTCP = ModbusTransport("tcp")
var ModbusTransportRTU = ModbusTransport("rtu")

func (s SensorType) Valid() bool {
	return s == SensorTypeDummy || s == SensorTypeModbus
}

func (o OutputType) Valid() bool {
	switch o {
	case OutputTypeDummy, OutputTypePeriph, OutputTypeRpio, OutputTypeModbus:
		return true
	}
	return false
}

func (m ModbusTransport) Valid() bool {
	return m == ModbusTransportTCP || m == ModbusTransportRTU
}
