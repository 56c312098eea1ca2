package mqtt

import (
	"fmt"
	"time"
)

// Telemetry is the decoded form of a published state message.
type Telemetry struct {
	Temperature float64 `json:"temperature"`
	Duty        float64 `json:"duty"`
	Alarm       int64   `json:"alarm"`
	Aux         int64   `json:"aux"`
	UpdatedAt   string  `json:"updatedAt"`
}

func (t Telemetry) Time() time.Time {
	ts, err := time.Parse(time.RFC3339, t.UpdatedAt)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func (t Telemetry) String() string {
	s := fmt.Sprintf("temp: %.2f °C | duty: %.1f%% | aux: %t", t.Temperature, t.Duty, t.Aux == 1)
	if t.Alarm == 1 {
		s += " | ALARM"
	}
	return s
}
