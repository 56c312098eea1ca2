package config

import (
	"testing"
	"time"

	"github.com/koding/multiconfig"
	"github.com/stretchr/testify/assert"
)

func defaults(t *testing.T) *CliConfig {
	c := &CliConfig{}
	err := (&multiconfig.TagLoader{}).Load(c)
	assert.NoError(t, err)
	return c
}

func TestDefaults(t *testing.T) {
	c := defaults(t)
	assert.Equal(t, ":80", c.ListenAddress)
	assert.Equal(t, 1024, c.MaxRequestBytes)
	assert.Equal(t, "dummy", c.SensorType)
	assert.Equal(t, 25.0, c.SimulatedTemperature)
	assert.Empty(t, c.MQTTListen)

	assert.NoError(t, c.Validate())
	assert.Equal(t, 100*time.Millisecond, c.TickDuration())
	assert.Equal(t, time.Second, c.ReportDuration())
	assert.Equal(t, 5*time.Second, c.RequestTimeoutDuration())
	assert.Equal(t, time.Second, c.ModbusTimeoutDuration())
	assert.False(t, c.UsesModbus())
}

func TestValidate(t *testing.T) {
	var tests = []struct {
		name   string
		modify func(c *CliConfig)
		valid  bool
	}{
		{name: "modbus sensor", modify: func(c *CliConfig) { c.SensorType = "modbus" }, valid: true},
		{name: "rpio actuator", modify: func(c *CliConfig) { c.ActuatorType = "rpio" }, valid: true},
		{name: "periph toggle", modify: func(c *CliConfig) { c.ToggleType = "periph" }, valid: true},
		{name: "unknown sensor", modify: func(c *CliConfig) { c.SensorType = "ds18b20" }},
		{name: "unknown actuator", modify: func(c *CliConfig) { c.ActuatorType = "relay" }},
		{name: "unknown toggle", modify: func(c *CliConfig) { c.ToggleType = "" }},
		{name: "rtu transport", modify: func(c *CliConfig) { c.ModbusTransport = "rtu" }, valid: true},
		{name: "unknown transport", modify: func(c *CliConfig) { c.ModbusTransport = "udp" }},
		{name: "bad tick", modify: func(c *CliConfig) { c.TickInterval = "fast" }},
		{name: "zero report", modify: func(c *CliConfig) { c.ReportInterval = "0s" }},
		{name: "negative timeout", modify: func(c *CliConfig) { c.RequestTimeout = "-1s" }},
		{name: "no request buffer", modify: func(c *CliConfig) { c.MaxRequestBytes = 0 }},
		{name: "wrap too large", modify: func(c *CliConfig) { c.PWMWrap = 70000 }},
		{name: "bad slave", modify: func(c *CliConfig) { c.ModbusSlaveID = 300 }},
		{name: "no pwm frequency", modify: func(c *CliConfig) { c.PWMFrequency = 0 }},
		{name: "rpio fastest pwm", modify: func(c *CliConfig) { c.ActuatorType = "rpio"; c.PWMFrequency = 4800000 }, valid: true},
		{name: "rpio pwm beyond clock", modify: func(c *CliConfig) { c.ActuatorType = "rpio"; c.PWMFrequency = 4800001 }},
		{name: "periph pwm unaffected by rpio clock", modify: func(c *CliConfig) { c.ActuatorType = "periph"; c.PWMFrequency = 4800001 }, valid: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			c := defaults(t)
			tt.modify(c)
			err := c.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestUsesModbus(t *testing.T) {
	c := defaults(t)
	c.ToggleType = "modbus"
	assert.True(t, c.UsesModbus())

	c = defaults(t)
	c.SensorType = "modbus"
	assert.True(t, c.UsesModbus())
}
