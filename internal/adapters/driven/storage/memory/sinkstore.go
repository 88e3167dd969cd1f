package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
	"github.com/custodia-labs/finderbridge/internal/core/ports/driven"
)

// Ensure ModelSink implements the interface.
var _ driven.ModelSink = (*ModelSink)(nil)

// StoredWell is a well as held by the in-memory sink.
type StoredWell struct {
	Header     domain.WellHeader
	Name       string
	Trajectory []domain.TrajectoryPoint
	Logs       map[string]domain.ColumnSeries
	State      *domain.WellState
}

// ModelSink is an in-memory implementation of driven.ModelSink.
type ModelSink struct {
	mu    sync.RWMutex
	wells map[string]*StoredWell
	tops  map[string][]domain.FormationTop
}

// NewModelSink creates a new in-memory model sink.
func NewModelSink() *ModelSink {
	return &ModelSink{
		wells: make(map[string]*StoredWell),
		tops:  make(map[string][]domain.FormationTop),
	}
}

// SaveWell stores or replaces a well header.
// Previously imported trajectory and logs are kept.
func (s *ModelSink) SaveWell(_ context.Context, header domain.WellHeader, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wells[header.UWI]
	if !ok {
		w = &StoredWell{Logs: make(map[string]domain.ColumnSeries)}
		s.wells[header.UWI] = w
	}
	w.Header = header
	w.Name = name
	return nil
}

// SaveTrajectory replaces the trajectory of a stored well.
func (s *ModelSink) SaveTrajectory(_ context.Context, uwi string, points []domain.TrajectoryPoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wells[uwi]
	if !ok {
		return domain.ErrNotFound
	}
	w.Trajectory = append([]domain.TrajectoryPoint(nil), points...)
	return nil
}

// SaveLog replaces one log of a stored well.
func (s *ModelSink) SaveLog(_ context.Context, uwi string, log domain.LogColumn, series domain.ColumnSeries) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wells[uwi]
	if !ok {
		return domain.ErrNotFound
	}
	series.Samples = append([]domain.DepthSample(nil), series.Samples...)
	w.Logs[log.Name] = series
	return nil
}

// SaveWellState stores the latest state of a stored well.
func (s *ModelSink) SaveWellState(_ context.Context, state domain.WellState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wells[state.UWI]
	if !ok {
		return domain.ErrNotFound
	}
	w.State = &state
	return nil
}

// SaveFormationTops replaces the tops of every well present in tops.
func (s *ModelSink) SaveFormationTops(_ context.Context, tops []domain.FormationTop) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fresh := make(map[string][]domain.FormationTop)
	for _, top := range tops {
		fresh[top.UWI] = append(fresh[top.UWI], top)
	}
	for uwi, t := range fresh {
		s.tops[uwi] = t
	}
	return nil
}

// KnownWells lists stored well identifiers in sorted order.
func (s *ModelSink) KnownWells(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	uwis := make([]string, 0, len(s.wells))
	for uwi := range s.wells {
		uwis = append(uwis, uwi)
	}
	sort.Strings(uwis)
	return uwis, nil
}

// Well returns a copy of a stored well.
func (s *ModelSink) Well(uwi string) (StoredWell, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.wells[uwi]
	if !ok {
		return StoredWell{}, false
	}
	cp := *w
	cp.Logs = make(map[string]domain.ColumnSeries, len(w.Logs))
	for k, v := range w.Logs {
		cp.Logs[k] = v
	}
	return cp, true
}

// Tops returns the stored formation tops of a well.
func (s *ModelSink) Tops(uwi string) []domain.FormationTop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.FormationTop(nil), s.tops[uwi]...)
}
