package modbusclient

import (
	"testing"
)

func TestDecode(t *testing.T) {

	var tests = []struct {
		name     string
		expected int
		given    []byte
	}{
		{
			name:     "8bit negative",
			expected: -28,
			given:    []byte{0xe4},
		},
		{
			name:     "16bit negative",
			expected: -28,
			given:    []byte{0xff, 0xe4},
		},
		{
			name:     "16bit postive",
			expected: 31,
			given:    []byte{0x00, 0x1f},
		},
		{
			name:     "large 32bit positive",
			expected: 514773,
			given:    []byte{0x00, 0x07, 0xda, 0xd5},
		},
		{
			name:     "32bit postive",
			expected: 31,
			given:    []byte{0x00, 0x00, 0x00, 0x1f},
		},
		{
			name:     "32bit negative",
			expected: -29,
			given:    []byte{0xff, 0xff, 0xff, 0xe3},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			actual := Decode(tt.given)
			if actual != tt.expected {
				t.Errorf("given(%#v): expected %d, actual %d", tt.given, tt.expected, actual)
			}
		})
	}

}

func TestCoilValue(t *testing.T) {
	if CoilValue(true) != 0xff00 {
		t.Errorf("expected 0xff00 for true, got %#x", CoilValue(true))
	}
	if CoilValue(false) != 0 {
		t.Errorf("expected 0 for false, got %#x", CoilValue(false))
	}
}

func TestDecodeADCSample(t *testing.T) {
	// 12 bit full scale as sent by an analog input module
	if actual := Decode([]byte{0x0f, 0xff}); actual != 4095 {
		t.Errorf("expected 4095, actual %d", actual)
	}
}

func TestDecodeUnsigned(t *testing.T) {
	var tests = []struct {
		given    []byte
		expected int
	}{
		{given: []byte{0x0f, 0xff}, expected: 4095},
		{given: []byte{0x9c, 0x40}, expected: 40000},
		{given: []byte{0xff, 0xff}, expected: 65535},
		{given: []byte{0xff}, expected: 255},
		{given: []byte{0x01, 0x00, 0x00, 0x00}, expected: 16777216},
		{given: []byte{}, expected: 0},
	}

	for _, tt := range tests {
		if actual := DecodeUnsigned(tt.given); actual != tt.expected {
			t.Errorf("DecodeUnsigned(%x): expected %d, actual %d", tt.given, tt.expected, actual)
		}
	}
}
