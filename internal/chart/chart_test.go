package chart

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func plain() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return r
}

func TestSparkline(t *testing.T) {
	values := []float64{30, 35, 40, 50, 60, 70, 80, 90, 100}
	result := RenderSparkline(plain(), values, 20, 20, 100, 75)
	if len(result) == 0 {
		t.Error("sparkline should not be empty")
	}
	if w := lipgloss.Width(result); w != 20 {
		t.Errorf("sparkline width: got %d, want 20", w)
	}
	t.Logf("Sparkline: %s", result)
}

func TestSparklineKeepsMostRecent(t *testing.T) {
	values := []float64{20, 20, 20, 20, 100}
	result := RenderSparkline(plain(), values, 2, 20, 100, 75)
	if w := lipgloss.Width(result); w != 2 {
		t.Errorf("sparkline width: got %d, want 2", w)
	}
	if result != "▁█" {
		t.Errorf("expected the last two values only, got %q", result)
	}
}

func TestSparklineEmpty(t *testing.T) {
	if got := RenderSparkline(plain(), nil, 0, 0, 1, 1); got != "" {
		t.Errorf("zero width: got %q", got)
	}
	result := RenderSparkline(plain(), nil, 5, 0, 1, 1)
	if result != strings.Repeat("╌", 5) {
		t.Errorf("empty history should render placeholders, got %q", result)
	}
}

func TestSparklineFollowsRenderer(t *testing.T) {
	values := []float64{50, 80}

	if got := RenderSparkline(plain(), values, 4, 0, 100, 75); strings.Contains(got, "\x1b[") {
		t.Errorf("ascii renderer emitted escape codes: %q", got)
	}

	colored := lipgloss.NewRenderer(io.Discard)
	colored.SetColorProfile(termenv.ANSI256)
	if got := RenderSparkline(colored, values, 4, 0, 100, 75); !strings.Contains(got, "\x1b[") {
		t.Errorf("ansi256 renderer produced no colors: %q", got)
	}
}

func TestValueColor(t *testing.T) {
	tests := []struct {
		v    float64
		want lipgloss.Color
	}{
		{80, "196"},
		{70, "220"},
		{50, "78"},
		{75, "220"},
	}
	for _, tt := range tests {
		if got := ValueColor(tt.v, 75); got != tt.want {
			t.Errorf("ValueColor(%v, 75) = %s, want %s", tt.v, got, tt.want)
		}
	}
}
