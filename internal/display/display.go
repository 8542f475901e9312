// Package display renders the monitor's console surface: banners, one line
// per machine per cycle with a temperature trend, and shutdown notices.
package display

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/luki/plantmon/internal/chart"
	"github.com/luki/plantmon/internal/config"
	"github.com/luki/plantmon/internal/history"
	"github.com/luki/plantmon/internal/sensor"
)

const (
	separatorWidth = 50
	trendWidth     = 20
)

// ── Color palette ────────────────────────────────────────────────────

var (
	colorTitleFg = lipgloss.Color("51")
	colorMachine = lipgloss.Color("147")
	colorDim     = lipgloss.Color("240")
	colorOk      = lipgloss.Color("78")
	colorWarn    = lipgloss.Color("220")
	colorCrit    = lipgloss.Color("196")
)

// Console writes the display to a terminal or any other writer.
type Console struct {
	w          io.Writer
	r          *lipgloss.Renderer
	thresholds config.Thresholds
	trend      int
}

// NewConsole creates a console display. Colors are only emitted when w is
// a terminal.
func NewConsole(w io.Writer, th config.Thresholds) *Console {
	return &Console{
		w:          w,
		r:          lipgloss.NewRenderer(w),
		thresholds: th,
		trend:      trendWidth,
	}
}

// WithThresholds returns a console coloring values against th.
func (c *Console) WithThresholds(th config.Thresholds) *Console {
	cp := *c
	cp.thresholds = th
	return &cp
}

// Welcome prints the startup banner.
func (c *Console) Welcome() {
	title := c.r.NewStyle().Bold(true).Foreground(colorTitleFg)
	fmt.Fprintln(c.w, title.Render("Bem-vindo ao Simulador de Monitoramento da Indústria 4.0!"))
	fmt.Fprintln(c.w, "Configuração inicial...")
}

// Thresholds reports the limits resolved at startup. A non-nil err means
// the input was rejected and the defaults are in effect.
func (c *Console) Thresholds(th config.Thresholds, err error) {
	if err != nil {
		warn := c.r.NewStyle().Foreground(colorWarn)
		fmt.Fprintln(c.w, warn.Render("Entrada inválida. Usando limites padrão.")+
			c.r.NewStyle().Foreground(colorDim).Render(" ("+th.String()+")"))
		fmt.Fprintln(c.w)
		return
	}
	fmt.Fprintf(c.w, "Limites ajustados: %s\n\n", th)
}

// Starting announces the monitoring loop.
func (c *Console) Starting() {
	fmt.Fprintln(c.w, "Iniciando o monitoramento da linha de produção...")
	fmt.Fprintln(c.w)
}

// BeginCycle prints the header of a monitoring round.
func (c *Console) BeginCycle(n int, t time.Time) {
	title := c.r.NewStyle().Bold(true).Foreground(colorTitleFg)
	meta := c.r.NewStyle().Foreground(colorDim).
		Render(fmt.Sprintf("  #%d %s", n, t.Format("15:04:05")))
	fmt.Fprintln(c.w, title.Render("=== Monitoramento em Tempo Real ===")+meta)
}

// Show prints one machine's reading, its performance label and the
// temperature trend accumulated so far.
func (c *Console) Show(machine string, r sensor.Reading, label string, h *history.Machine) {
	th := c.thresholds

	name := c.r.NewStyle().Bold(true).Foreground(colorMachine).Render(machine)
	temp := c.value(fmt.Sprintf("Temp=%s°C", config.FormatNumber(r.Temperature)), r.Temperature, th.MaxTemperature)
	hum := c.value(fmt.Sprintf("Umid=%s%%", config.FormatNumber(r.Humidity)), r.Humidity, th.MaxHumidity)
	eff := fmt.Sprintf("Efic=%s%%", config.FormatNumber(r.Efficiency))

	statusColor := colorOk
	if r.Alert() {
		statusColor = colorCrit
	}
	status := c.r.NewStyle().Bold(r.Alert()).Foreground(statusColor).Render("Status=" + string(r.Status))

	labelColor := colorOk
	if r.Efficiency < sensor.LowEfficiency {
		labelColor = colorWarn
	}
	perf := c.r.NewStyle().Foreground(labelColor).Render(label)

	line := fmt.Sprintf("%s: %s, %s, %s, %s, %s", name, temp, hum, eff, status, perf)
	if h != nil && h.Cycles() > 0 {
		line += "  " + c.trendOf(h)
	}
	fmt.Fprintln(c.w, line)
}

// EndCycle closes a monitoring round.
func (c *Console) EndCycle() {
	fmt.Fprintln(c.w, c.r.NewStyle().Foreground(colorDim).Render(strings.Repeat("-", separatorWidth)))
}

// Closing announces that monitoring was interrupted.
func (c *Console) Closing() {
	fmt.Fprintln(c.w)
	fmt.Fprintln(c.w, "Monitoramento encerrado pelo usuário.")
	fmt.Fprintln(c.w)
}

// ChartWritten reports an exported chart file.
func (c *Console) ChartWritten(kind, path string) {
	fmt.Fprintf(c.w, "\nGráfico de %s gerado: '%s'\n", kind, path)
}

func (c *Console) value(text string, v, limit float64) string {
	return c.r.NewStyle().Bold(v > limit).Foreground(chart.ValueColor(v, limit)).Render(text)
}

func (c *Console) trendOf(h *history.Machine) string {
	limit := c.thresholds.MaxTemperature
	rangeMin := math.Max(0, h.Min-5)
	rangeMax := math.Max(h.Peak, limit) + 5
	return chart.RenderSparkline(c.r, history.LastN(h.Temperatures, c.trend), c.trend, rangeMin, rangeMax, limit)
}
