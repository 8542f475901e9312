// Package config holds the operational limits and the run settings of the
// monitor. Thresholds are resolved once at startup and never change while
// monitoring runs.
package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultMaxTemperature = 75.0 // °C
	DefaultMaxHumidity    = 60.0 // %
)

// ErrInvalidThreshold is returned when a threshold could not be parsed.
var ErrInvalidThreshold = errors.New("invalid threshold")

// Thresholds are the upper bounds a reading is classified against.
type Thresholds struct {
	MaxTemperature float64
	MaxHumidity    float64
}

// DefaultThresholds returns the compiled-in limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxTemperature: DefaultMaxTemperature,
		MaxHumidity:    DefaultMaxHumidity,
	}
}

// ParseThresholds parses the two user supplied limits. A failure on either
// value discards both and returns the defaults along with ErrInvalidThreshold.
func ParseThresholds(temp, hum string) (Thresholds, error) {
	t, err := ParseLimit(temp)
	if err != nil {
		return DefaultThresholds(), fmt.Errorf("temperature %q: %w", temp, err)
	}
	h, err := ParseLimit(hum)
	if err != nil {
		return DefaultThresholds(), fmt.Errorf("humidity %q: %w", hum, err)
	}
	return Thresholds{MaxTemperature: t, MaxHumidity: h}, nil
}

// ParseLimit parses a single limit. NaN and infinities are rejected.
func ParseLimit(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidThreshold
	}
	return v, nil
}

// String renders the limits the way the console reports them.
func (t Thresholds) String() string {
	return fmt.Sprintf("Temp=%s°C, Umid=%s%%", FormatNumber(t.MaxTemperature), FormatNumber(t.MaxHumidity))
}

// FormatNumber prints v with the shortest representation, always keeping
// at least one decimal digit (75 -> "75.0", 72.35 -> "72.35").
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
