package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	envMachines   = "PLANTMON_MACHINES"
	envInterval   = "PLANTMON_INTERVAL"
	envLogFile    = "PLANTMON_LOG_FILE"
	envGraphsDir  = "PLANTMON_GRAPHS_DIR"
	envSeed       = "PLANTMON_SEED"
	envLogLevel   = "PLANTMON_LOG_LEVEL"
	envMaxTemp    = "PLANTMON_MAX_TEMPERATURE"
	envMaxHumid   = "PLANTMON_MAX_HUMIDITY"
	defaultPeriod = 3 * time.Second
)

// DefaultMachines is the production line monitored when nothing else is
// configured.
var DefaultMachines = []string{"Compressor Central", "Robô Soldador", "Esteira Transportadora"}

// Settings describes one monitoring run.
type Settings struct {
	Machines  []string
	Interval  time.Duration
	LogFile   string
	GraphsDir string
	LogLevel  slog.Level

	Seed    int64
	HasSeed bool

	// Raw threshold values from the environment. Both must be set for the
	// interactive prompt to be skipped.
	MaxTemperature string
	MaxHumidity    string
}

// PresetThresholds reports whether both limits were provided up front.
func (s Settings) PresetThresholds() bool {
	return s.MaxTemperature != "" && s.MaxHumidity != ""
}

// Defaults returns the settings used when the environment is empty.
func Defaults() Settings {
	machines := make([]string, len(DefaultMachines))
	copy(machines, DefaultMachines)
	return Settings{
		Machines:  machines,
		Interval:  defaultPeriod,
		LogFile:   "log.txt",
		GraphsDir: "Gráficos",
		LogLevel:  slog.LevelInfo,
	}
}

// Load reads envFiles, or an optional .env when none are named, and then
// the process environment. A missing .env is ignored but a missing named
// file is reported. Malformed values are reported through the returned
// warnings and replaced by their defaults; Load never fails the run.
func Load(envFiles ...string) (Settings, []string) {
	var warnings []string
	if err := godotenv.Load(envFiles...); err != nil && (len(envFiles) > 0 || !os.IsNotExist(err)) {
		warnings = append(warnings, fmt.Sprintf("env file: %v", err))
	}
	return FromLookup(os.LookupEnv, warnings)
}

// FromLookup builds settings from an arbitrary variable lookup.
func FromLookup(lookup func(string) (string, bool), warnings []string) (Settings, []string) {
	s := Defaults()

	if v, ok := lookup(envMachines); ok {
		if machines := splitMachines(v); len(machines) > 0 {
			s.Machines = machines
		} else {
			warnings = append(warnings, fmt.Sprintf("%s is empty, using default machines", envMachines))
		}
	}

	if v, ok := lookup(envInterval); ok && v != "" {
		if d, err := parseInterval(v); err == nil {
			s.Interval = d
		} else {
			warnings = append(warnings, fmt.Sprintf("%s=%q: %v, using %s", envInterval, v, err, defaultPeriod))
		}
	}

	if v, ok := lookup(envLogFile); ok && v != "" {
		s.LogFile = v
	}
	if v, ok := lookup(envGraphsDir); ok && v != "" {
		s.GraphsDir = v
	}

	if v, ok := lookup(envSeed); ok && v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			s.Seed = seed
			s.HasSeed = true
		} else {
			warnings = append(warnings, fmt.Sprintf("%s=%q is not an integer, seeding from clock", envSeed, v))
		}
	}

	if v, ok := lookup(envLogLevel); ok && v != "" {
		if err := s.LogLevel.UnmarshalText([]byte(v)); err != nil {
			s.LogLevel = slog.LevelInfo
			warnings = append(warnings, fmt.Sprintf("%s=%q: %v", envLogLevel, v, err))
		}
	}

	s.MaxTemperature, _ = lookup(envMaxTemp)
	s.MaxHumidity, _ = lookup(envMaxHumid)

	return s, warnings
}

func splitMachines(v string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range strings.Split(v, ",") {
		m = strings.TrimSpace(m)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

func parseInterval(v string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil {
		secs, aerr := strconv.Atoi(v)
		if aerr != nil {
			return 0, err
		}
		d = time.Duration(secs) * time.Second
	}
	if d <= 0 {
		return 0, fmt.Errorf("interval must be positive")
	}
	return d, nil
}
