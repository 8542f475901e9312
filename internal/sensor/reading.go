// Package sensor produces the synthetic machine readings the monitor
// samples every cycle and classifies them against the active thresholds.
package sensor

import (
	"fmt"

	"github.com/luki/plantmon/internal/config"
)

// Status is the binary health classification of a reading.
type Status string

const (
	StatusOK    Status = "OK"
	StatusAlert Status = "ALERTA"
)

// LowEfficiency is the bound below which a machine is flagged as
// under-performing.
const LowEfficiency = 80.0

// Reading represents one sample of a machine's sensors.
type Reading struct {
	Temperature float64 // °C
	Humidity    float64 // %
	Efficiency  float64 // %
	Status      Status
}

// Alert reports whether the reading crossed a threshold.
func (r Reading) Alert() bool {
	return r.Status == StatusAlert
}

// String renders the reading as it appears on the console and in the log.
func (r Reading) String() string {
	return fmt.Sprintf("Temp=%s°C, Umid=%s%%, Efic=%s%%, Status=%s",
		config.FormatNumber(r.Temperature),
		config.FormatNumber(r.Humidity),
		config.FormatNumber(r.Efficiency),
		r.Status)
}

// Classify derives the status of a temperature/humidity pair. Values equal
// to a limit are still OK.
func Classify(temperature, humidity float64, th config.Thresholds) Status {
	if temperature > th.MaxTemperature || humidity > th.MaxHumidity {
		return StatusAlert
	}
	return StatusOK
}

// PerformanceLabel is the display-only efficiency descriptor.
func PerformanceLabel(efficiency float64) string {
	if efficiency < LowEfficiency {
		return "Desempenho Baixo"
	}
	return "Desempenho OK"
}
