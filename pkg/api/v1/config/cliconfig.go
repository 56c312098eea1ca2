package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/nergy-se/fancontroller/pkg/api/v1/types"
)

type CliConfig struct {
	LogLevel string `default:"info"`

	ListenAddress   string `default:":80"`
	RequestTimeout  string `default:"5s"`
	MaxRequestBytes int    `default:"1024"`

	TickInterval   string `default:"100ms"`
	ReportInterval string `default:"1s"`

	SensorType   string `default:"dummy"`
	ActuatorType string `default:"dummy"`
	ToggleType   string `default:"dummy"`

	// SimulatedTemperature is what the dummy sensor reads.
	SimulatedTemperature float64 `default:"25"`

	ModbusTransport  string `default:"tcp"`
	ModbusAddress    string `default:"127.0.0.1:502"`
	ModbusDevice     string `default:"/dev/ttyUSB0"`
	ModbusBaudRate   int    `default:"9600"`
	ModbusSlaveID    int    `default:"1"`
	ModbusTimeout    string `default:"1s"`
	ModbusADCReg     int    `default:"0"`
	ModbusPWMReg     int    `default:"0"`
	ModbusToggleCoil int    `default:"0"`

	// FanPin and TogglePin are BCM numbers. periph uses the GPIO<n> names.
	FanPin       int `default:"18"`
	TogglePin    int `default:"16"`
	PWMFrequency int `default:"25000"`
	PWMWrap      int `default:"4095"`

	// MQTTListen enables the embedded telemetry broker when set, e.g. ":1883".
	MQTTListen string
	MQTTTopic  string `default:"fancontroller/state"`

	tickInterval   time.Duration
	reportInterval time.Duration
	requestTimeout time.Duration
	modbusTimeout  time.Duration
}

var ErrNonPositiveDuration = errors.New("duration must be positive")

// go-rpio needs at least two PWM clock counts per cycle on its 9.6 MHz top clock.
const maxRpioPWMFrequency = 4800000

// Validate parses the duration fields and checks driver selections.
func (c *CliConfig) Validate() error {
	var err error
	if c.tickInterval, err = parseDuration("TickInterval", c.TickInterval); err != nil {
		return err
	}
	if c.reportInterval, err = parseDuration("ReportInterval", c.ReportInterval); err != nil {
		return err
	}
	if c.requestTimeout, err = parseDuration("RequestTimeout", c.RequestTimeout); err != nil {
		return err
	}
	if c.modbusTimeout, err = parseDuration("ModbusTimeout", c.ModbusTimeout); err != nil {
		return err
	}

	if !types.SensorType(c.SensorType).Valid() {
		return fmt.Errorf("unknown sensor type %q", c.SensorType)
	}
	if !types.OutputType(c.ActuatorType).Valid() {
		return fmt.Errorf("unknown actuator type %q", c.ActuatorType)
	}
	if !types.OutputType(c.ToggleType).Valid() {
		return fmt.Errorf("unknown toggle type %q", c.ToggleType)
	}
	if !types.ModbusTransport(c.ModbusTransport).Valid() {
		return fmt.Errorf("unknown modbus transport %q", c.ModbusTransport)
	}
	if c.MaxRequestBytes <= 0 {
		return fmt.Errorf("MaxRequestBytes must be positive, got %d", c.MaxRequestBytes)
	}
	if c.PWMWrap <= 0 || c.PWMWrap > 0xffff {
		return fmt.Errorf("PWMWrap must be within 1-65535, got %d", c.PWMWrap)
	}
	if c.PWMFrequency <= 0 {
		return fmt.Errorf("PWMFrequency must be positive, got %d", c.PWMFrequency)
	}
	if types.OutputType(c.ActuatorType) == types.OutputTypeRpio && c.PWMFrequency > maxRpioPWMFrequency {
		return fmt.Errorf("PWMFrequency %d too high for rpio, max %d", c.PWMFrequency, maxRpioPWMFrequency)
	}
	if c.ModbusSlaveID < 0 || c.ModbusSlaveID > 247 {
		return fmt.Errorf("ModbusSlaveID must be within 0-247, got %d", c.ModbusSlaveID)
	}
	return nil
}

func parseDuration(name, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("error parsing %s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s %s: %w", name, value, ErrNonPositiveDuration)
	}
	return d, nil
}

func (c *CliConfig) TickDuration() time.Duration {
	return c.tickInterval
}

func (c *CliConfig) ReportDuration() time.Duration {
	return c.reportInterval
}

func (c *CliConfig) RequestTimeoutDuration() time.Duration {
	return c.requestTimeout
}

func (c *CliConfig) ModbusTimeoutDuration() time.Duration {
	return c.modbusTimeout
}

// UsesModbus reports whether any driver role talks to the Modbus I/O module.
func (c *CliConfig) UsesModbus() bool {
	return types.SensorType(c.SensorType) == types.SensorTypeModbus ||
		types.OutputType(c.ActuatorType) == types.OutputTypeModbus ||
		types.OutputType(c.ToggleType) == types.OutputTypeModbus
}
