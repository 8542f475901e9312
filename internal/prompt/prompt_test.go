package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/luki/plantmon/internal/config"
)

func typeText(m model, s string) model {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(model)
	}
	return m
}

func press(m model, k tea.KeyType) (model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(model), cmd
}

func TestFormCollectsBothLimits(t *testing.T) {
	m := typeText(model{}, "31")
	m, _ = press(m, tea.KeyBackspace)
	m = typeText(m, "0")
	require.Contains(t, m.View(), "30")

	m, cmd := press(m, tea.KeyEnter)
	require.Nil(t, cmd)
	require.Equal(t, 1, m.field)
	require.Contains(t, m.View(), "umidade")

	m = typeText(m, "40.5")
	m, cmd = press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	require.True(t, m.done)
	require.Empty(t, m.View())

	th, err := resolve(m)
	require.NoError(t, err)
	require.Equal(t, config.Thresholds{MaxTemperature: 30, MaxHumidity: 40.5}, th)
}

func TestFormInvalidInputFallsBack(t *testing.T) {
	m := typeText(model{}, "quente")
	m, _ = press(m, tea.KeyEnter)
	m = typeText(m, "50")
	m, _ = press(m, tea.KeyCtrlJ)

	th, err := resolve(m)
	require.True(t, errors.Is(err, config.ErrInvalidThreshold))
	require.Equal(t, config.DefaultThresholds(), th)
}

func TestFormAbortUsesDefaults(t *testing.T) {
	m := typeText(model{}, "99")
	m, cmd := press(m, tea.KeyEsc)
	require.NotNil(t, cmd)
	require.True(t, m.aborted)

	th, err := resolve(m)
	require.Error(t, err)
	require.Equal(t, 75.0, th.MaxTemperature)
	require.Equal(t, 60.0, th.MaxHumidity)
}

func TestReadLines(t *testing.T) {
	var out bytes.Buffer
	th, err := ReadLines(strings.NewReader("80\n55\n"), &out)
	require.NoError(t, err)
	require.Equal(t, config.Thresholds{MaxTemperature: 80, MaxHumidity: 55}, th)
	require.Contains(t, out.String(), "Digite o limite máximo de temperatura (°C): ")
	require.Contains(t, out.String(), "Digite o limite máximo de umidade (%): ")
}

func TestReadLinesStopsAtFirstBadAnswer(t *testing.T) {
	for _, first := range []string{"abc", "+Inf", ""} {
		var out bytes.Buffer
		th, err := ReadLines(strings.NewReader(first+"\n55\n"), &out)
		require.ErrorIs(t, err, config.ErrInvalidThreshold, "first answer %q", first)
		require.ErrorContains(t, err, "temperature")
		require.Equal(t, config.DefaultThresholds(), th)
		require.NotContains(t, out.String(), "umidade")
	}
}

func TestReadLinesEOF(t *testing.T) {
	var out bytes.Buffer
	th, err := ReadLines(strings.NewReader("80\n"), &out)
	require.ErrorIs(t, err, config.ErrInvalidThreshold)
	require.Equal(t, config.DefaultThresholds(), th)
}
