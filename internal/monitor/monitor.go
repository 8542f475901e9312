// Package monitor implements the sampling loop: every interval it reads
// each tracked machine once, records the reading, logs it and shows it.
// The loop is a two-state machine (running, stopping); cancellation is
// only observed between cycles so a started cycle always completes.
package monitor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/looplab/fsm"

	"github.com/luki/plantmon/internal/config"
	"github.com/luki/plantmon/internal/history"
	"github.com/luki/plantmon/internal/logsink"
	"github.com/luki/plantmon/internal/sensor"
)

const (
	StateRunning  = "running"
	StateStopping = "stopping"

	eventStop = "stop"

	defaultInterval = 3 * time.Second
)

// ErrNotRunning is returned when the monitor was already stopped.
var ErrNotRunning = errors.New("monitor is not running")

// Display is the interactive surface a cycle reports to.
type Display interface {
	BeginCycle(n int, t time.Time)
	Show(machine string, r sensor.Reading, label string, h *history.Machine)
	EndCycle()
}

type nopDisplay struct{}

func (nopDisplay) BeginCycle(int, time.Time) {}
func (nopDisplay) Show(string, sensor.Reading, string, *history.Machine) {}
func (nopDisplay) EndCycle() {}

// Monitor owns the histories of a run while it is sampling.
type Monitor struct {
	machines   []string
	thresholds config.Thresholds
	source     sensor.Source
	sink       logsink.Sink
	display    Display
	history    *history.Store
	interval   time.Duration
	now        func() time.Time
	log        *slog.Logger
	teardown   func(*history.Store)

	state  *fsm.FSM
	cycles int
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithInterval sets the wait between two cycles.
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithSink sets the text log every reading is appended to.
func WithSink(s logsink.Sink) Option {
	return func(m *Monitor) { m.sink = s }
}

// WithDisplay sets the surface cycles are shown on.
func WithDisplay(d Display) Option {
	return func(m *Monitor) { m.display = d }
}

// WithClock replaces time.Now for log timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) { m.now = now }
}

// WithLogger sets the operational logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Monitor) { m.log = l }
}

// WithTeardown registers the function run once, on entering the stopping
// state, with the final histories.
func WithTeardown(f func(*history.Store)) Option {
	return func(m *Monitor) { m.teardown = f }
}

// New creates a monitor for machines, in that order.
func New(machines []string, th config.Thresholds, src sensor.Source, opts ...Option) *Monitor {
	m := &Monitor{
		machines:   machines,
		thresholds: th,
		source:     src,
		sink:       logsink.Discard{},
		display:    nopDisplay{},
		history:    history.NewStore(machines),
		interval:   defaultInterval,
		now:        time.Now,
		log:        slog.Default(),
	}
	for _, o := range opts {
		o(m)
	}
	// tracking order is the de-duplicated store order
	m.machines = m.history.IDs()

	m.state = fsm.NewFSM(
		StateRunning,
		fsm.Events{
			{Name: eventStop, Src: []string{StateRunning}, Dst: StateStopping},
		},
		fsm.Callbacks{
			"enter_" + StateStopping: func(_ context.Context, _ *fsm.Event) {
				m.log.Info("monitoring stopped", slog.Int("cycles", m.cycles))
				if m.teardown != nil {
					m.teardown(m.history)
				}
			},
		},
	)
	return m
}

// History returns the accumulated histories. Callers must not mutate them
// while the monitor is running.
func (m *Monitor) History() *history.Store {
	return m.history
}

// Cycles returns the number of completed cycles.
func (m *Monitor) Cycles() int {
	return m.cycles
}

// State returns the current state name.
func (m *Monitor) State() string {
	return m.state.Current()
}

// RunCycle samples every machine once.
func (m *Monitor) RunCycle() {
	m.cycles++
	m.display.BeginCycle(m.cycles, m.now())

	for _, id := range m.machines {
		r := m.source.Read(id, m.thresholds)
		label := sensor.PerformanceLabel(r.Efficiency)

		m.history.Record(id, r)

		if err := m.sink.Write(m.now(), id, r); err != nil {
			m.log.Warn("log write failed",
				slog.String("machine", id),
				slog.String("error", err.Error()),
			)
		}

		m.display.Show(id, r, label, m.history.Get(id))

		if r.Alert() {
			m.log.Debug("threshold exceeded",
				slog.String("machine", id),
				slog.Float64("temperature", r.Temperature),
				slog.Float64("humidity", r.Humidity),
			)
		}
	}

	m.display.EndCycle()
}

// Run samples until ctx is cancelled, then stops the monitor, which runs
// the teardown. Cancellation is checked before each cycle and during the
// wait between cycles.
func (m *Monitor) Run(ctx context.Context) error {
	if !m.state.Is(StateRunning) {
		return ErrNotRunning
	}
	m.log.Info("monitoring started",
		slog.Int("machines", len(m.machines)),
		slog.Duration("interval", m.interval),
	)

	timer := time.NewTimer(m.interval)
	defer timer.Stop()

	for {
		if ctx.Err() != nil {
			return m.Stop(ctx)
		}

		m.RunCycle()

		timer.Reset(m.interval)
		select {
		case <-ctx.Done():
			return m.Stop(ctx)
		case <-timer.C:
		}
	}
}

// Stop moves the monitor to the stopping state. Only the first call runs
// the teardown; later calls return ErrNotRunning.
func (m *Monitor) Stop(ctx context.Context) error {
	err := m.state.Event(context.WithoutCancel(ctx), eventStop)
	var invalid fsm.InvalidEventError
	if errors.As(err, &invalid) {
		return ErrNotRunning
	}
	return err
}
