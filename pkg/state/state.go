package state

import (
	"sync"
	"time"
)

// Snapshot is the shared controller state. TemperatureC, DutyPercent and
// AlarmActive are written by the control loop only, AuxToggle by the request
// server only. UpdatedAt records when the reading was taken and is not part
// of the controlled state; use Values to compare snapshots.
type Snapshot struct {
	TemperatureC float64   `json:"temperature"`
	DutyPercent  float64   `json:"duty"`
	AlarmActive  bool      `json:"alarm"`
	AuxToggle    bool      `json:"aux"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Values returns s without UpdatedAt.
func (s Snapshot) Values() Snapshot {
	s.UpdatedAt = time.Time{}
	return s
}

// Running reports whether the fan is being driven at all.
func (s Snapshot) Running() bool {
	return s.DutyPercent > 0
}

func (s Snapshot) Map() map[string]interface{} {
	m := make(map[string]interface{})
	m["temperature"] = s.TemperatureC
	m["duty"] = s.DutyPercent
	m["alarm"] = boolToInt(s.AlarmActive)
	m["aux"] = boolToInt(s.AuxToggle)
	if !s.UpdatedAt.IsZero() {
		m["updatedAt"] = s.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return m
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// Store holds the single Snapshot shared between the control loop and the request server.
type Store struct {
	snapshot Snapshot
	sync.RWMutex
}

func NewStore() *Store {
	return &Store{}
}

// Get returns a copy of the current snapshot.
func (s *Store) Get() Snapshot {
	s.RLock()
	defer s.RUnlock()
	return s.snapshot
}

// SetReading replaces temperature, duty and alarm in one step so readers never
// observe a new temperature with a stale alarm flag.
func (s *Store) SetReading(tempC, dutyPercent float64, alarm bool) {
	s.Lock()
	s.snapshot.TemperatureC = tempC
	s.snapshot.DutyPercent = dutyPercent
	s.snapshot.AlarmActive = alarm
	s.snapshot.UpdatedAt = time.Now()
	s.Unlock()
}

func (s *Store) SetAux(on bool) {
	s.Lock()
	s.snapshot.AuxToggle = on
	s.Unlock()
}
