// Package modbusio drives the fan controller through a Modbus analog/digital
// I/O module: the thermistor divider on an analog input register, the fan PWM
// level on a holding register and the indicator on a coil.
package modbusio

import (
	"context"
	"fmt"
	"sync"

	"github.com/nergy-se/fancontroller/pkg/controller"
	"github.com/nergy-se/fancontroller/pkg/modbusclient"
)

// IO shares one Modbus client between the three roles. goburrow clients are
// not safe for concurrent use so every request is serialised.
type IO struct {
	client modbusclient.Client
	mutex  sync.Mutex

	adcRegister uint16
	pwmRegister uint16
	pwmWrap     uint32
	toggleCoil  uint16
}

func New(client modbusclient.Client, adcRegister, pwmRegister, toggleCoil uint16, pwmWrap uint32) *IO {
	if pwmWrap == 0 {
		pwmWrap = controller.DefaultPWMWrap
	}
	return &IO{
		client:      client,
		adcRegister: adcRegister,
		pwmRegister: pwmRegister,
		pwmWrap:     pwmWrap,
		toggleCoil:  toggleCoil,
	}
}

func (m *IO) RawSample(_ context.Context) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.client.ReadInputRegister(m.adcRegister)
}

func (m *IO) SetDuty(_ context.Context, percent float64) error {
	level := controller.PWMLevel(percent, m.pwmWrap)
	m.mutex.Lock()
	defer m.mutex.Unlock()
	_, err := m.client.WriteSingleRegister(m.pwmRegister, uint16(level))
	if err != nil {
		return fmt.Errorf("modbusio: set pwm level %d: %w", level, err)
	}
	return nil
}

func (m *IO) SetLevel(_ context.Context, on bool) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	_, err := m.client.WriteSingleCoil(m.toggleCoil, modbusclient.CoilValue(on))
	if err != nil {
		return fmt.Errorf("modbusio: set coil %d: %w", m.toggleCoil, err)
	}
	return nil
}

func (m *IO) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.client.Close()
}
