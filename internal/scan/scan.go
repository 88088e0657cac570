// Package scan orchestrates a full box scan: grid mapping, photometric
// analysis, classification, roster reconciliation, and baseline
// learning.
package scan

import (
	"fmt"
	"image"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"phonebox-scanner/internal/baseline"
	"phonebox-scanner/internal/boxspec"
	"phonebox-scanner/internal/classify"
	"phonebox-scanner/internal/grid"
	"phonebox-scanner/internal/photometry"
	"phonebox-scanner/internal/reconcile"
	"phonebox-scanner/internal/roster"
)

// Summary aggregates one scan's results.
type Summary struct {
	Slots            int     `json:"slots"`
	Present          int     `json:"present"`
	TurnedIn         int     `json:"turnedIn"`
	Missing          int     `json:"missing"`
	Suspicious       int     `json:"suspicious"`
	Unassigned       int     `json:"unassigned"`
	Learned          int     `json:"learned"`
	MeanDarkRatio    float64 `json:"meanDarkRatio"`
	StddevDarkRatio  float64 `json:"stddevDarkRatio"`
	MedianDarkRatio  float64 `json:"medianDarkRatio"`
	MeanConfidence   float64 `json:"meanConfidence"`
	StddevConfidence float64 `json:"stddevConfidence"`
}

// Result is one completed scan.
type Result struct {
	ScanID    string          `json:"scanId"`
	Box       boxspec.Layout  `json:"box"`
	CreatedAt time.Time       `json:"createdAt"`
	Rows      []reconcile.Row `json:"rows"`
	Summary   Summary         `json:"summary"`
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the scan logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// WithClock overrides the timestamp source used for scan times and
// learned baselines.
func WithClock(now func() time.Time) Option {
	return func(s *Scanner) {
		s.now = now
	}
}

// WithRoster supplies the roster the scan reconciles against. Without
// it every slot reads as unassigned.
func WithRoster(entries []roster.Entry) Option {
	return func(s *Scanner) {
		s.entries = entries
	}
}

// Scanner runs box scans against a roster and a persisted baseline set.
type Scanner struct {
	store     baseline.Store
	logger    *slog.Logger
	now       func() time.Time
	entries   []roster.Entry
	roster    map[string]roster.Entry
	baselines *baseline.Set
}

// New creates a Scanner backed by the given baseline store. Stored
// profiles are loaded up front so every scan sees the same set.
func New(store baseline.Store, opts ...Option) (*Scanner, error) {
	s := &Scanner{
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.roster = roster.Index(s.entries, s.logger)

	profiles, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load baselines: %w", err)
	}
	s.baselines = baseline.NewSet(profiles)
	s.logger.Debug("scanner ready", "roster_entries", len(s.roster), "baselines", s.baselines.Len())
	return s, nil
}

// Baselines exposes the loaded baseline set.
func (s *Scanner) Baselines() *baseline.Set {
	return s.baselines
}

// Scan maps the photo into cells, classifies each slot, reconciles
// against the roster, and runs the baseline learning pass. If anything
// was learned the store is saved before the result is returned.
func (s *Scanner) Scan(img image.Image, crop grid.CropPercent, box boxspec.Layout, th classify.Thresholds) (*Result, error) {
	bounds := img.Bounds()
	cells, err := grid.Map(bounds.Dx(), bounds.Dy(), crop, box.Rows, box.Cols)
	if err != nil {
		return nil, err
	}

	now := s.now()
	dets := make([]classify.Detection, 0, len(cells))
	for _, cell := range cells {
		stats := photometry.AnalyzeRegion(img, cell.Inner)
		det := classify.Classify(stats, th)
		det.Slot = cell.Slot
		det.Identifier = box.Identifier(cell.Slot)
		dets = append(dets, det)
	}

	rows := reconcile.Reconcile(dets, s.roster, s.baselines)

	learned := s.baselines.Learn(rows, now)
	if learned > 0 {
		if err := s.store.Save(s.baselines.Snapshot()); err != nil {
			return nil, fmt.Errorf("failed to persist baselines: %w", err)
		}
	}

	result := &Result{
		ScanID:    uuid.New().String(),
		Box:       box,
		CreatedAt: now,
		Rows:      rows,
		Summary:   summarize(rows, learned),
	}
	s.logger.Info("scan complete",
		"scan_id", result.ScanID,
		"box", box.Code,
		"slots", result.Summary.Slots,
		"present", result.Summary.Present,
		"learned", learned)
	return result, nil
}

// ExportBaselines returns the current profiles sorted by identifier.
func (s *Scanner) ExportBaselines() []baseline.Profile {
	return s.baselines.Export()
}

// ImportBaselines validates and merges the records, then persists the
// updated set. An invalid payload changes nothing.
func (s *Scanner) ImportBaselines(records []baseline.Profile) error {
	if err := s.baselines.Import(records); err != nil {
		return err
	}
	if err := s.store.Save(s.baselines.Snapshot()); err != nil {
		return fmt.Errorf("failed to persist baselines: %w", err)
	}
	s.logger.Info("imported baselines", "count", len(records))
	return nil
}

func summarize(rows []reconcile.Row, learned int) Summary {
	sum := Summary{Slots: len(rows), Learned: learned}
	if len(rows) == 0 {
		return sum
	}

	darks := make([]float64, 0, len(rows))
	confs := make([]float64, 0, len(rows))
	for _, row := range rows {
		if row.Present {
			sum.Present++
		}
		switch row.Status {
		case reconcile.StatusTurnedIn:
			sum.TurnedIn++
		case reconcile.StatusMissing:
			sum.Missing++
		case reconcile.StatusSuspicious:
			sum.Suspicious++
		case reconcile.StatusUnassigned:
			sum.Unassigned++
		}
		darks = append(darks, row.DarkRatio)
		confs = append(confs, row.Confidence)
	}

	sum.MeanDarkRatio = stat.Mean(darks, nil)
	sum.MeanConfidence = stat.Mean(confs, nil)
	if len(rows) > 1 {
		sum.StddevDarkRatio = stat.StdDev(darks, nil)
		sum.StddevConfidence = stat.StdDev(confs, nil)
	}
	sort.Float64s(darks)
	sum.MedianDarkRatio = stat.Quantile(0.5, stat.Empirical, darks, nil)
	return sum
}
