// Package stats reduces the histories of a finished run into per-machine
// summaries.
package stats

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/luki/plantmon/internal/chart"
	"github.com/luki/plantmon/internal/config"
	"github.com/luki/plantmon/internal/history"
)

// ErrEmptyHistory is returned when a mean is requested over zero samples,
// i.e. a report was asked for before any cycle ran.
var ErrEmptyHistory = errors.New("empty history")

// Summary aggregates one machine's run.
type Summary struct {
	MachineID       string
	MeanTemperature float64
	MeanHumidity    float64
	MeanEfficiency  float64
	TotalAlerts     int
	Cycles          int
}

// Mean returns the arithmetic mean of values rounded to two decimals.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyHistory
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return round2(sum / float64(len(values))), nil
}

// Summarize computes one Summary per machine in tracking order. It fails on
// the first machine that was never sampled.
func Summarize(store *history.Store) ([]Summary, error) {
	machines := store.Machines()
	out := make([]Summary, 0, len(machines))
	for _, m := range machines {
		s, err := SummarizeMachine(m)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// SummarizeMachine computes the summary of a single history.
func SummarizeMachine(m *history.Machine) (Summary, error) {
	temp, err := Mean(m.Temperatures)
	if err != nil {
		return Summary{}, fmt.Errorf("%s: temperature: %w", m.ID, err)
	}
	hum, err := Mean(m.Humidities)
	if err != nil {
		return Summary{}, fmt.Errorf("%s: humidity: %w", m.ID, err)
	}
	eff, err := Mean(m.Efficiencies)
	if err != nil {
		return Summary{}, fmt.Errorf("%s: efficiency: %w", m.ID, err)
	}
	return Summary{
		MachineID:       m.ID,
		MeanTemperature: temp,
		MeanHumidity:    hum,
		MeanEfficiency:  eff,
		TotalAlerts:     m.Alerts,
		Cycles:          m.Cycles(),
	}, nil
}

// Render prints the consolidated statistics block.
func Render(w io.Writer, summaries []Summary, th config.Thresholds) {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	dim := r.NewStyle().Foreground(lipgloss.Color("240"))

	fmt.Fprintln(w)
	fmt.Fprintln(w, title.Render("=== Estatísticas Consolidadas ==="))
	for _, s := range summaries {
		temp := r.NewStyle().Foreground(chart.ValueColor(s.MeanTemperature, th.MaxTemperature)).
			Render(fmt.Sprintf("Média Temp=%s°C", config.FormatNumber(s.MeanTemperature)))
		hum := r.NewStyle().Foreground(chart.ValueColor(s.MeanHumidity, th.MaxHumidity)).
			Render(fmt.Sprintf("Média Umid=%s%%", config.FormatNumber(s.MeanHumidity)))
		fmt.Fprintf(w, "%s: %s, %s, Alertas=%d%s\n", s.MachineID, temp, hum, s.TotalAlerts,
			dim.Render(fmt.Sprintf("  (%d ciclos, Média Efic=%s%%)", s.Cycles, config.FormatNumber(s.MeanEfficiency))))
	}
	fmt.Fprintln(w, dim.Render(strings.Repeat("-", 50)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
