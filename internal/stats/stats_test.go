package stats

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luki/plantmon/internal/config"
	"github.com/luki/plantmon/internal/history"
	"github.com/luki/plantmon/internal/sensor"
)

func TestMean(t *testing.T) {
	m, err := Mean([]float64{10, 20, 30})
	require.NoError(t, err)
	require.Equal(t, 20.0, m)

	m, err = Mean([]float64{10, 20, 20})
	require.NoError(t, err)
	require.Equal(t, 16.67, m)

	_, err = Mean(nil)
	require.ErrorIs(t, err, ErrEmptyHistory)
}

func TestSummarize(t *testing.T) {
	store := history.NewStore([]string{"Compressor Central", "Robô Soldador"})
	store.Record("Compressor Central", sensor.Reading{Temperature: 35, Humidity: 50, Efficiency: 90, Status: sensor.StatusAlert})
	store.Record("Compressor Central", sensor.Reading{Temperature: 20, Humidity: 10, Efficiency: 80, Status: sensor.StatusOK})
	store.Record("Robô Soldador", sensor.Reading{Temperature: 72.35, Humidity: 41.1, Efficiency: 77.7, Status: sensor.StatusOK})

	got, err := Summarize(store)
	require.NoError(t, err)
	require.Equal(t, []Summary{
		{MachineID: "Compressor Central", MeanTemperature: 27.5, MeanHumidity: 30, MeanEfficiency: 85, TotalAlerts: 1, Cycles: 2},
		{MachineID: "Robô Soldador", MeanTemperature: 72.35, MeanHumidity: 41.1, MeanEfficiency: 77.7, TotalAlerts: 0, Cycles: 1},
	}, got)
}

func TestSummarizeEmptyHistory(t *testing.T) {
	store := history.NewStore([]string{"Compressor Central", "Esteira Transportadora"})
	store.Record("Compressor Central", sensor.Reading{Temperature: 30, Humidity: 40, Efficiency: 90})

	got, err := Summarize(store)
	require.Nil(t, got)
	require.True(t, errors.Is(err, ErrEmptyHistory))
	require.Contains(t, err.Error(), "Esteira Transportadora")
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, []Summary{
		{MachineID: "Compressor Central", MeanTemperature: 27.5, MeanHumidity: 30, MeanEfficiency: 85, TotalAlerts: 2, Cycles: 2},
	}, config.DefaultThresholds())

	out := buf.String()
	require.Contains(t, out, "=== Estatísticas Consolidadas ===")
	require.Contains(t, out, "Compressor Central: Média Temp=27.5°C, Média Umid=30.0%, Alertas=2")
	require.Contains(t, out, "(2 ciclos, Média Efic=85.0%)")
}
