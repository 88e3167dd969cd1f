package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
	"github.com/custodia-labs/finderbridge/internal/core/ports/driven"
	"github.com/custodia-labs/finderbridge/internal/core/ports/driving"
	"github.com/custodia-labs/finderbridge/internal/logger"
)

// Ensure Importer implements the interface.
var _ driving.WellImporter = (*Importer)(nil)

// Importer runs batch imports.
//
// Failing to acquire the service, open the session or list the wells aborts
// the batch. Everything after that is per well: a failed survey or log query
// is recorded in the report and the batch moves on.
type Importer struct {
	broker    driving.ServiceBroker
	sink      driven.ModelSink
	resampler *Resampler
	metrics   driven.ImportMetrics
	limiter   *rate.Limiter
	now       func() time.Time
}

// NewImporter creates an importer.
// metrics may be nil. maxQPS paces per-well queries; zero disables pacing.
func NewImporter(
	broker driving.ServiceBroker,
	sink driven.ModelSink,
	resampler *Resampler,
	metrics driven.ImportMetrics,
	maxQPS float64,
) *Importer {
	var limiter *rate.Limiter
	if maxQPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(maxQPS), 1)
	}
	return &Importer{
		broker:    broker,
		sink:      sink,
		resampler: resampler,
		metrics:   metrics,
		limiter:   limiter,
		now:       time.Now,
	}
}

// Load imports every well matching the session's well filter.
func (im *Importer) Load(ctx context.Context, opts domain.ImportOptions) (*domain.ImportReport, error) {
	return im.run(ctx, opts, nil)
}

// Update re-imports the wells already known to the sink.
// The well filter is ignored; the sink decides which wells qualify.
func (im *Importer) Update(ctx context.Context, opts domain.ImportOptions) (*domain.ImportReport, error) {
	known, err := im.sink.KnownWells(ctx)
	if err != nil {
		return nil, fmt.Errorf("list known wells: %w", err)
	}
	only := make(map[string]struct{}, len(known))
	for _, uwi := range known {
		only[uwi] = struct{}{}
	}
	opts.Session.WellFilter = ""
	return im.run(ctx, opts, only)
}

// ListWells opens a session and returns the matching well headers.
func (im *Importer) ListWells(ctx context.Context, session domain.SessionConfig) ([]domain.WellHeader, error) {
	svc, err := im.open(ctx, session)
	if err != nil {
		return nil, err
	}
	defer im.closeSession(ctx, svc)

	return svc.ListWellHeaders(ctx)
}

func (im *Importer) open(ctx context.Context, session domain.SessionConfig) (driven.DataAccessService, error) {
	svc, err := im.broker.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire data access service: %w", err)
	}
	if err := svc.Configure(ctx, session); err != nil {
		return nil, fmt.Errorf("configure session: %w", err)
	}
	if err := svc.Open(ctx); err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	return svc, nil
}

func (im *Importer) closeSession(ctx context.Context, svc driven.DataAccessService) {
	if err := svc.Close(ctx); err != nil {
		logger.Warn("Failed to close session: %v", err)
	}
}

//nolint:gocognit // Orchestration function with necessary sequential steps
func (im *Importer) run(ctx context.Context, opts domain.ImportOptions, only map[string]struct{}) (*domain.ImportReport, error) {
	report := &domain.ImportReport{StartedAt: im.now()}

	svc, err := im.open(ctx, opts.Session)
	if err != nil {
		return nil, err
	}
	defer im.closeSession(ctx, svc)

	if version, err := svc.ServerVersion(ctx); err == nil {
		report.ServerVersion = version
		logger.Info("Connected to %s", version)
	} else {
		logger.Warn("Server version unavailable: %v", err)
	}

	headers, err := svc.ListWellHeaders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list wells: %w", err)
	}

	logger.Section("Wells")
	var stored []string
	for _, h := range headers {
		if only != nil {
			if _, ok := only[h.UWI]; !ok {
				continue
			}
		}

		result, saved := im.importWell(ctx, svc, h, opts)
		report.Wells = append(report.Wells, result)
		if saved {
			stored = append(stored, h.UWI)
		}
		if im.metrics != nil {
			im.metrics.ObserveWell(result.OK())
		}

		if result.OK() {
			logger.Info("%s loaded successfully", h.UWI)
		} else {
			logger.Warn("%s loaded with errors: %v", h.UWI, errors.Join(result.Errors...))
		}
	}

	if len(stored) == 0 {
		logger.Info("No wells to import")
	} else {
		report.StateErr = im.importStates(ctx, svc, stored)
		if opts.LoadSurvey {
			report.TopsErr = im.importTops(ctx, svc, stored)
		}
	}

	report.FinishedAt = im.now()
	logger.Info("Import complete: %d loaded, %d with errors in %s",
		report.Loaded(), report.Failed(), report.Duration())

	if im.metrics != nil {
		im.metrics.ObserveBatch(report)
		if err := im.metrics.Export(); err != nil {
			logger.Warn("Failed to export metrics: %v", err)
		}
	}
	return report, nil
}

// importWell loads one well. The boolean reports whether the header reached
// the sink, which is what later batch-level queries need.
func (im *Importer) importWell(
	ctx context.Context,
	svc driven.DataAccessService,
	h domain.WellHeader,
	opts domain.ImportOptions,
) (domain.WellResult, bool) {
	result := domain.WellResult{
		UWI:  h.UWI,
		Name: domain.DisplayName(h, opts.NameFromUWI, opts.Suffix),
	}

	if err := im.sink.SaveWell(ctx, h, result.Name); err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("save well: %w", err))
		return result, false
	}

	if opts.LoadSurvey {
		if err := im.importSurvey(ctx, svc, h); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("directional survey: %w", err))
		}
	}

	if opts.LoadLogs {
		if err := im.importLogs(ctx, svc, h.UWI, opts.Columns); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("well logs: %w", err))
		}
	}

	return result, true
}

func (im *Importer) importSurvey(ctx context.Context, svc driven.DataAccessService, h domain.WellHeader) error {
	if err := im.wait(ctx); err != nil {
		return err
	}
	points, err := svc.GetDirectionalSurvey(ctx, h.UWI)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		return fmt.Errorf("%w: directional survey", domain.ErrNotFound)
	}
	return im.sink.SaveTrajectory(ctx, h.UWI, CorrectSurvey(h, points))
}

func (im *Importer) importLogs(ctx context.Context, svc driven.DataAccessService, uwi string, table domain.LogColumnTable) error {
	if table.Len() == 0 {
		return nil
	}
	if err := im.wait(ctx); err != nil {
		return err
	}
	intervals, err := svc.GetLogIntervals(ctx, uwi, table.Spec())
	if err != nil {
		return err
	}

	series, err := im.resampler.ResampleAll(table, intervals)
	if err != nil {
		return err
	}

	saved := 0
	for _, col := range table.Columns() {
		s := series[col.Column]
		if s.Empty() {
			logger.Debug("%s: no intervals for log %s", uwi, col.Name)
			continue
		}
		if err := im.sink.SaveLog(ctx, uwi, col, s); err != nil {
			return fmt.Errorf("save log %s: %w", col.Name, err)
		}
		saved++
	}
	if saved == 0 {
		return fmt.Errorf("%w: well logs", domain.ErrNotFound)
	}
	return nil
}

func (im *Importer) importStates(ctx context.Context, svc driven.DataAccessService, uwis []string) error {
	states, err := svc.GetLatestWellState(ctx, uwis)
	if err != nil {
		logger.Warn("Error while loading well states: %v", err)
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("%w: well state", domain.ErrNotFound)
	}

	var errs []error
	for _, st := range states {
		if err := im.sink.SaveWellState(ctx, st); err != nil {
			errs = append(errs, fmt.Errorf("save state %s: %w", st.UWI, err))
		}
	}
	return errors.Join(errs...)
}

func (im *Importer) importTops(ctx context.Context, svc driven.DataAccessService, uwis []string) error {
	tops, err := svc.GetFormationTops(ctx, uwis)
	if err != nil {
		logger.Warn("Error while loading well tops: %v", err)
		return err
	}
	if len(tops) == 0 {
		return fmt.Errorf("%w: well tops", domain.ErrNotFound)
	}
	return im.sink.SaveFormationTops(ctx, tops)
}

func (im *Importer) wait(ctx context.Context) error {
	if im.limiter == nil {
		return nil
	}
	return im.limiter.Wait(ctx)
}
