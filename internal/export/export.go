// Package export writes the end-of-run charts: one PNG for the temperature
// series and one for the humidity series of every machine, each with a
// dashed reference line at the operational limit.
package export

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/luki/plantmon/internal/config"
	"github.com/luki/plantmon/internal/history"
)

const (
	stampLayout = "20060102_150405"
	chartWidth  = 10 * vg.Inch
	chartHeight = 5 * vg.Inch
)

var (
	colorTempLimit     = color.RGBA{R: 220, A: 255}
	colorHumidityLimit = color.RGBA{B: 220, A: 255}
	colorGrid          = color.Gray{Y: 210}
	dashes             = []vg.Length{vg.Points(4), vg.Points(3)}
)

// Paths are the files written by one export.
type Paths struct {
	Temperature string
	Humidity    string
}

// Exporter renders charts into a directory. Filenames embed the export
// time; exports that land on the same second get a numeric suffix so every
// call yields new files.
type Exporter struct {
	dir  string
	now  func() time.Time
	used map[string]bool
}

// New creates an exporter writing into dir.
func New(dir string) *Exporter {
	return &Exporter{
		dir:  dir,
		now:  time.Now,
		used: make(map[string]bool),
	}
}

// Dir returns the output directory.
func (e *Exporter) Dir() string {
	return e.dir
}

// series describes one of the two charts.
type series struct {
	file   string
	title  string
	ylabel string
	limit  float64
	color  color.Color
	shape  draw.GlyphDrawer
	values func(*history.Machine) []float64
}

// Export renders the temperature and humidity charts of every machine.
func (e *Exporter) Export(store *history.Store, th config.Thresholds) (Paths, error) {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return Paths{}, fmt.Errorf("cannot create chart dir: %w", err)
	}

	stamp := e.uniqueStamp()
	paths := Paths{
		Temperature: filepath.Join(e.dir, "grafico_temperatura_"+stamp+".png"),
		Humidity:    filepath.Join(e.dir, "grafico_umidade_"+stamp+".png"),
	}

	charts := []series{
		{
			file:   paths.Temperature,
			title:  "Evolução da Temperatura nas Máquinas",
			ylabel: "Temperatura (°C)",
			limit:  th.MaxTemperature,
			color:  colorTempLimit,
			shape:  draw.CircleGlyph{},
			values: func(m *history.Machine) []float64 { return m.Temperatures },
		},
		{
			file:   paths.Humidity,
			title:  "Evolução da Umidade nas Máquinas",
			ylabel: "Umidade (%)",
			limit:  th.MaxHumidity,
			color:  colorHumidityLimit,
			shape:  draw.SquareGlyph{},
			values: func(m *history.Machine) []float64 { return m.Humidities },
		},
	}

	for _, c := range charts {
		p, err := render(store, c)
		if err != nil {
			return Paths{}, err
		}
		if err := p.Save(chartWidth, chartHeight, c.file); err != nil {
			return Paths{}, fmt.Errorf("write %s: %w", c.file, err)
		}
	}
	return paths, nil
}

// uniqueStamp returns the current timestamp, suffixed when it was already
// used by this exporter or files for it already exist on disk.
func (e *Exporter) uniqueStamp() string {
	base := e.now().Format(stampLayout)
	stamp := base
	for n := 1; e.used[stamp] || e.exists(stamp); n++ {
		stamp = fmt.Sprintf("%s_%d", base, n)
	}
	e.used[stamp] = true
	return stamp
}

func (e *Exporter) exists(stamp string) bool {
	for _, prefix := range []string{"grafico_temperatura_", "grafico_umidade_"} {
		if _, err := os.Stat(filepath.Join(e.dir, prefix+stamp+".png")); err == nil {
			return true
		}
	}
	return false
}

func render(store *history.Store, s series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = s.title
	p.X.Label.Text = "Ciclos de Monitoramento"
	p.Y.Label.Text = s.ylabel
	p.Legend.Top = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = colorGrid
	grid.Vertical.Dashes = dashes
	grid.Horizontal.Color = colorGrid
	grid.Horizontal.Dashes = dashes
	p.Add(grid)

	cycles := 0
	for i, m := range store.Machines() {
		values := s.values(m)
		if len(values) > cycles {
			cycles = len(values)
		}
		if len(values) == 0 {
			continue
		}

		pts := make(plotter.XYs, len(values))
		for j, v := range values {
			pts[j].X = float64(j)
			pts[j].Y = v
		}

		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, fmt.Errorf("%s series for %s: %w", s.ylabel, m.ID, err)
		}
		c := plotutil.Color(i)
		line.Color = c
		points.Shape = s.shape
		points.Color = c

		p.Add(line, points)
		p.Legend.Add(m.ID, line, points)
	}

	last := float64(cycles - 1)
	if last < 0 {
		last = 0
	}
	limit, err := plotter.NewLine(plotter.XYs{{X: 0, Y: s.limit}, {X: last, Y: s.limit}})
	if err != nil {
		return nil, fmt.Errorf("%s limit: %w", s.ylabel, err)
	}
	limit.Color = s.color
	limit.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	limit.Width = vg.Points(1.5)

	p.Add(limit)
	p.Legend.Add("Limite Crítico", limit)

	return p, nil
}
