// Command plantmon simulates the sensors of a production line, classifies
// every reading against operator supplied limits and, when interrupted,
// prints consolidated statistics and writes temperature and humidity charts.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	"github.com/luki/plantmon/internal/config"
	"github.com/luki/plantmon/internal/display"
	"github.com/luki/plantmon/internal/export"
	"github.com/luki/plantmon/internal/history"
	"github.com/luki/plantmon/internal/logsink"
	"github.com/luki/plantmon/internal/monitor"
	"github.com/luki/plantmon/internal/prompt"
	"github.com/luki/plantmon/internal/sensor"
	"github.com/luki/plantmon/internal/stats"
)

func main() {
	os.Exit(run())
}

func run() int {
	envFile := flag.String("env", "", "env file to load instead of .env")
	noPrompt := flag.Bool("no-prompt", false, "skip the threshold prompt and use the defaults")
	flag.Parse()

	var envFiles []string
	if *envFile != "" {
		envFiles = append(envFiles, *envFile)
	}
	settings, warnings := config.Load(envFiles...)

	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      settings.LogLevel,
		TimeFormat: time.TimeOnly,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})).With(slog.String("run", uuid.NewString()))
	slog.SetDefault(log)

	for _, w := range warnings {
		log.Warn("config", slog.String("detail", w))
	}

	console := display.NewConsole(os.Stdout, config.DefaultThresholds())
	console.Welcome()

	th, err := resolveThresholds(settings, *noPrompt)
	console = console.WithThresholds(th)
	console.Thresholds(th, err)
	if err != nil {
		log.Warn("threshold input rejected, using defaults", slog.String("error", err.Error()))
	}

	seed := time.Now().UnixNano()
	if settings.HasSeed {
		seed = settings.Seed
	}

	sink := logsink.New(settings.LogFile)
	defer sink.Close()

	exporter := export.New(settings.GraphsDir)
	var exportErr error

	teardown := func(store *history.Store) {
		console.Closing()

		summaries, err := stats.Summarize(store)
		if err != nil {
			log.Error("statistics unavailable", slog.String("error", err.Error()))
		} else {
			stats.Render(os.Stdout, summaries, th)
		}

		paths, err := exporter.Export(store, th)
		if err != nil {
			exportErr = err
			return
		}
		console.ChartWritten("Temperatura", paths.Temperature)
		console.ChartWritten("Umidade", paths.Humidity)
	}

	mon := monitor.New(settings.Machines, th, sensor.NewGenerator(seed),
		monitor.WithInterval(settings.Interval),
		monitor.WithSink(sink),
		monitor.WithDisplay(console),
		monitor.WithLogger(log),
		monitor.WithTeardown(teardown),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Debug("settings",
		slog.Any("machines", settings.Machines),
		slog.String("log_file", sink.Path()),
		slog.String("graphs_dir", exporter.Dir()),
		slog.Int64("seed", seed),
	)

	console.Starting()
	if err := mon.Run(ctx); err != nil {
		log.Error("monitor", slog.String("error", err.Error()))
		return 1
	}
	if exportErr != nil {
		log.Error("chart export failed", slog.String("error", exportErr.Error()))
		return 1
	}
	return 0
}

// resolveThresholds picks the limits from the environment, the interactive
// form, or plain line input, in that order.
func resolveThresholds(s config.Settings, noPrompt bool) (config.Thresholds, error) {
	switch {
	case s.PresetThresholds():
		return config.ParseThresholds(s.MaxTemperature, s.MaxHumidity)
	case noPrompt:
		return config.DefaultThresholds(), nil
	case isatty.IsTerminal(os.Stdin.Fd()):
		return prompt.Run(os.Stdin, os.Stdout)
	default:
		return prompt.ReadLines(os.Stdin, os.Stdout)
	}
}
