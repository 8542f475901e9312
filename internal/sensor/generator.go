package sensor

import (
	"math"
	"math/rand"

	"github.com/luki/plantmon/internal/config"
)

// Sampling ranges of the simulated sensors.
const (
	minTemperature, maxTemperature = 20.0, 100.0
	minHumidity, maxHumidity       = 30.0, 70.0
	minEfficiency, maxEfficiency   = 70.0, 100.0
)

// Source yields one reading per call for the given machine. Thresholds only
// decide the status, never the values.
type Source interface {
	Read(machine string, th config.Thresholds) Reading
}

// Generator draws independent uniform readings from a random stream.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator seeded with seed. Equal seeds replay the
// same readings.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Read draws a new reading. The machine name does not influence the draw.
func (g *Generator) Read(_ string, th config.Thresholds) Reading {
	r := Reading{
		Temperature: g.uniform(minTemperature, maxTemperature),
		Humidity:    g.uniform(minHumidity, maxHumidity),
		Efficiency:  g.uniform(minEfficiency, maxEfficiency),
	}
	r.Status = Classify(r.Temperature, r.Humidity, th)
	return r
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return round2(lo + g.rng.Float64()*(hi-lo))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Scripted replays fixed per-machine readings in order. Status is
// recomputed against the thresholds passed to Read. Once a machine's
// script is exhausted its last reading repeats; a machine without a script
// reads all zeros.
type Scripted struct {
	scripts map[string][]Reading
	next    map[string]int
}

// NewScripted creates a source from per-machine reading sequences.
func NewScripted(scripts map[string][]Reading) *Scripted {
	return &Scripted{
		scripts: scripts,
		next:    make(map[string]int),
	}
}

// Read returns the next scripted reading for machine.
func (s *Scripted) Read(machine string, th config.Thresholds) Reading {
	script := s.scripts[machine]
	var r Reading
	if len(script) > 0 {
		i := s.next[machine]
		if i >= len(script) {
			i = len(script) - 1
		} else {
			s.next[machine] = i + 1
		}
		r = script[i]
	}
	r.Status = Classify(r.Temperature, r.Humidity, th)
	return r
}
