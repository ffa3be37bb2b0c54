// Package dashboard holds the view state behind the energy mix and charging
// window panels: what is loading, what failed, and what to display.
package dashboard

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/vietddude/chargewindow/internal/core/domain"
	"github.com/vietddude/chargewindow/internal/metrics"
)

// Messages shown instead of raw errors.
const (
	EnergyMixErrorMessage = "Failed to download energy mix."
	WindowErrorMessage    = "Failed to calculate optimal loading window."
)

// EnergyMixLoader fetches the forecast mix.
type EnergyMixLoader interface {
	GetEnergyMix(ctx context.Context) ([]domain.EnergyMixDay, error)
}

// WindowCalculator fetches the optimal charging window.
type WindowCalculator interface {
	GetOptimalWindow(ctx context.Context, req domain.OptimalWindowRequest) (domain.OptimalWindowResponse, error)
}

// EnergyMixSnapshot is a point-in-time copy of EnergyMixState.
type EnergyMixSnapshot struct {
	Data    []domain.EnergyMixDay `json:"data"`
	Loading bool                  `json:"loading"`
	Error   string                `json:"error,omitempty"`
}

// EnergyMixState tracks the energy mix panel. It starts in the loading state.
type EnergyMixState struct {
	loader EnergyMixLoader
	log    *slog.Logger

	mu      sync.RWMutex
	data    []domain.EnergyMixDay
	loading bool
	err     string
}

// NewEnergyMixState creates a new EnergyMixState.
func NewEnergyMixState(loader EnergyMixLoader, logger *slog.Logger) *EnergyMixState {
	if logger == nil {
		logger = slog.Default()
	}
	return &EnergyMixState{
		loader:  loader,
		log:     logger.With("component", "energy_mix"),
		loading: true,
	}
}

// Load fetches the mix and records the outcome. If ctx is done by the time
// the fetch returns, the state is left untouched.
func (s *EnergyMixState) Load(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	days, err := s.loader.GetEnergyMix(ctx)
	if err != nil {
		s.log.Error("getEnergyMix error", "error", err)
	}
	if ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		metrics.DashboardFetchesTotal.WithLabelValues("energy_mix", "error").Inc()
		s.err = EnergyMixErrorMessage
	} else {
		metrics.DashboardFetchesTotal.WithLabelValues("energy_mix", "success").Inc()
		s.data = days
		s.err = ""
	}
	s.loading = false
}

// Snapshot returns a copy of the current state.
func (s *EnergyMixState) Snapshot() EnergyMixSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data []domain.EnergyMixDay
	if s.data != nil {
		data = make([]domain.EnergyMixDay, len(s.data))
		copy(data, s.data)
	}
	return EnergyMixSnapshot{Data: data, Loading: s.loading, Error: s.err}
}

// WindowSnapshot is a point-in-time copy of OptimalWindowState.
type WindowSnapshot struct {
	Result  *domain.OptimalWindowResponse `json:"result"`
	Hours   int                           `json:"hours,omitempty"`
	Loading bool                          `json:"loading"`
	Error   string                        `json:"error,omitempty"`
}

// OptimalWindowState tracks the charging window panel.
type OptimalWindowState struct {
	calc WindowCalculator
	log  *slog.Logger

	// calcMu serialises calculations so loading and result always belong
	// to the same request.
	calcMu sync.Mutex

	mu      sync.RWMutex
	result  *domain.OptimalWindowResponse
	hours   int
	loading bool
	err     string
}

// NewOptimalWindowState creates a new OptimalWindowState.
func NewOptimalWindowState(calc WindowCalculator, logger *slog.Logger) *OptimalWindowState {
	if logger == nil {
		logger = slog.Default()
	}
	return &OptimalWindowState{
		calc: calc,
		log:  logger.With("component", "optimal_window"),
	}
}

// Calculate asks for the best window of the given length and returns the
// state it produced. A failure clears any previously displayed result.
// Concurrent calls run one at a time.
func (s *OptimalWindowState) Calculate(ctx context.Context, hours int) WindowSnapshot {
	s.calcMu.Lock()
	defer s.calcMu.Unlock()

	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	res, err := s.calc.GetOptimalWindow(ctx, domain.OptimalWindowRequest{Hours: hours})

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.log.Warn("Failed to calculate optimal window", "hours", hours, "error", err)
		metrics.DashboardFetchesTotal.WithLabelValues("charging_window", "error").Inc()
		s.result = nil
		s.hours = 0
		s.err = WindowErrorMessage
	} else {
		s.log.Debug("Optimal window calculated", "hours", hours, "start", res.Start, "end", res.End)
		metrics.DashboardFetchesTotal.WithLabelValues("charging_window", "success").Inc()
		metrics.WindowCleanShare.WithLabelValues(strconv.Itoa(hours)).Set(res.CleanEnergyShare)
		s.result = &res
		s.hours = hours
	}
	s.loading = false
	return s.snapshotLocked()
}

// Snapshot returns a copy of the current state.
func (s *OptimalWindowState) Snapshot() WindowSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *OptimalWindowState) snapshotLocked() WindowSnapshot {
	snap := WindowSnapshot{Hours: s.hours, Loading: s.loading, Error: s.err}
	if s.result != nil {
		r := *s.result
		snap.Result = &r
	}
	return snap
}
