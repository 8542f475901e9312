// Package chart renders terminal sparklines and values color-coded against
// an operational limit.
package chart

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// ValueColor returns the color for v given the limit it is checked against.
func ValueColor(v, limit float64) lipgloss.Color {
	switch {
	case v > limit:
		return lipgloss.Color("196") // red
	case v >= limit*0.9:
		return lipgloss.Color("220") // yellow
	default:
		return lipgloss.Color("78") // soft green
	}
}

// RenderSparkline renders the last width values as color-coded blocks
// scaled into [rangeMin, rangeMax]. Missing history is padded on the left.
// Styles come from r, so color output follows the writer r is bound to.
func RenderSparkline(r *lipgloss.Renderer, values []float64, width int, rangeMin, rangeMax, limit float64) string {
	if width <= 0 {
		return ""
	}

	dim := r.NewStyle().Foreground(lipgloss.Color("236"))
	if len(values) == 0 {
		return dim.Render(strings.Repeat("╌", width))
	}

	if len(values) > width {
		values = values[len(values)-width:]
	}

	padLen := width - len(values)
	span := rangeMax - rangeMin
	if span <= 0 {
		span = 1
	}

	var sb strings.Builder
	for i := 0; i < padLen; i++ {
		sb.WriteString(dim.Render("╌"))
	}

	for _, v := range values {
		norm := (v - rangeMin) / span
		norm = math.Max(0, math.Min(1, norm))

		idx := int(norm * 7)
		if idx > 7 {
			idx = 7
		}

		style := r.NewStyle().Foreground(ValueColor(v, limit))
		if v > limit {
			style = style.Bold(true)
		}
		sb.WriteString(style.Render(string(sparkBlocks[idx])))
	}

	return sb.String()
}
