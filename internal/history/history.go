// Package history accumulates the per-machine sensor series of a run.
// Series only ever grow: readings are appended in cycle order and never
// dropped or reordered, so the index of a value is its cycle number.
package history

import (
	"math"

	"github.com/luki/plantmon/internal/sensor"
)

// Machine holds everything observed for one machine.
type Machine struct {
	ID           string
	Temperatures []float64
	Humidities   []float64
	Efficiencies []float64
	Alerts       int

	// extremes of the temperature series
	Min  float64
	Peak float64
}

// NewMachine creates an empty history for id.
func NewMachine(id string) *Machine {
	return &Machine{
		ID:   id,
		Min:  math.MaxFloat64,
		Peak: -math.MaxFloat64,
	}
}

// Push appends one reading.
func (m *Machine) Push(r sensor.Reading) {
	m.Temperatures = append(m.Temperatures, r.Temperature)
	m.Humidities = append(m.Humidities, r.Humidity)
	m.Efficiencies = append(m.Efficiencies, r.Efficiency)
	if r.Alert() {
		m.Alerts++
	}

	if r.Temperature < m.Min {
		m.Min = r.Temperature
	}
	if r.Temperature > m.Peak {
		m.Peak = r.Temperature
	}
}

// Cycles returns how many readings were recorded.
func (m *Machine) Cycles() int {
	return len(m.Temperatures)
}

// LastN returns a copy of the last n values of series.
func LastN(series []float64, n int) []float64 {
	if n <= 0 || len(series) == 0 {
		return nil
	}
	start := len(series) - n
	if start < 0 {
		start = 0
	}
	out := make([]float64, len(series[start:]))
	copy(out, series[start:])
	return out
}

// Store manages the histories of all tracked machines, keeping the order
// they were configured in.
type Store struct {
	order []string
	data  map[string]*Machine
}

// NewStore creates an empty history for each machine. Duplicate ids are
// tracked once, at their first position.
func NewStore(machines []string) *Store {
	s := &Store{data: make(map[string]*Machine, len(machines))}
	for _, id := range machines {
		if _, ok := s.data[id]; ok {
			continue
		}
		s.data[id] = NewMachine(id)
		s.order = append(s.order, id)
	}
	return s
}

// Record appends a reading to the machine's history. Unknown machines are
// added at the end of the tracking order.
func (s *Store) Record(id string, r sensor.Reading) {
	m, ok := s.data[id]
	if !ok {
		m = NewMachine(id)
		s.data[id] = m
		s.order = append(s.order, id)
	}
	m.Push(r)
}

// Get returns the history of a machine, or nil.
func (s *Store) Get(id string) *Machine {
	return s.data[id]
}

// IDs returns the machine ids in tracking order.
func (s *Store) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Machines returns the histories in tracking order.
func (s *Store) Machines() []*Machine {
	out := make([]*Machine, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.data[id])
	}
	return out
}
