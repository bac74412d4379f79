// Package analysis aggregates inter-module shading losses over daily,
// monthly and annual horizons.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/RubinhoSilva/bess-pro-sub010/pkg/pvarray"
	"github.com/RubinhoSilva/bess-pro-sub010/pkg/shading"
	"github.com/RubinhoSilva/bess-pro-sub010/pkg/solar"
	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

// ErrAborted is returned when an analysis is canceled before completion.
// Partial results are discarded, never merged into a completed-looking
// Result.
var ErrAborted = errors.New("shading analysis aborted")

// Mode selects the sampling horizon.
type Mode string

const (
	ModeCurrent Mode = "current"
	ModeDaily   Mode = "daily"
	ModeMonthly Mode = "monthly"
	ModeAnnual  Mode = "annual"
)

// criticalThreshold marks months whose average loss is severe enough to
// surface as a critical period.
const criticalThreshold = 0.3

// peakSunThreshold is the hourly loss below which an hour counts as a
// peak sun hour.
const peakSunThreshold = 0.1

// monthSampleDays are the representative days sampled in each month.
var monthSampleDays = []int{5, 15, 25}

// HourlySample is the average shading factor across all modules at one
// whole hour of the reference day.
type HourlySample struct {
	Hour          int     `json:"hour"`
	ShadingFactor float64 `json:"shading_factor"`
}

// MonthlySample is the average shading factor for one calendar month.
type MonthlySample struct {
	Month         time.Month `json:"month"`
	ShadingFactor float64    `json:"shading_factor"`
}

// CriticalPeriod is a calendar interval whose aggregate loss exceeds the
// severity threshold.
type CriticalPeriod struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Severity float64   `json:"severity"`
}

// Result is the aggregate outcome of one analysis run.
type Result struct {
	RunID string `json:"run_id"`
	Mode  Mode   `json:"mode"`

	HourlySamples  []HourlySample  `json:"hourly_samples,omitempty"`
	MonthlySamples []MonthlySample `json:"monthly_samples,omitempty"`

	AnnualEnergyFactor  float64          `json:"annual_energy_factor"`
	PeakSunHours        int              `json:"peak_sun_hours"`
	ShadingLossFraction float64          `json:"shading_loss_fraction"`
	CriticalPeriods     []CriticalPeriod `json:"critical_periods,omitempty"`

	// Daylight bounds used for the daily sweep, for reporting layers.
	Sunrise time.Time `json:"sunrise,omitempty"`
	Sunset  time.Time `json:"sunset,omitempty"`
}

// Request describes one analysis run. Reference supplies "now" for the
// Current mode and the date/year anchor for the others; the sampler never
// consults the wall clock, keeping runs reproducible.
type Request struct {
	Modules   []pvarray.Module
	Latitude  float64
	Longitude float64
	Mode      Mode
	Reference time.Time

	// OnProgress, if set, is invoked after each completed month of a
	// Monthly/Annual run with (completed, total).
	OnProgress func(done, total int)
}

// Analyzer drives the shading calculator across time. Safe for concurrent
// use: every run is a one-shot function of its Request.
type Analyzer struct {
	calc    *shading.Calculator
	logger  *zap.SugaredLogger
	workers int
}

// New returns an Analyzer that fans Monthly/Annual sampling out over
// workers goroutines. A workers value below 1 falls back to 4.
func New(calc *shading.Calculator, logger *zap.SugaredLogger, workers int) *Analyzer {
	if calc == nil {
		calc = shading.NewCalculator()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if workers < 1 {
		workers = 4
	}
	return &Analyzer{calc: calc, logger: logger, workers: workers}
}

// Analyze runs the requested sampling horizon. A canceled context aborts
// between samples and returns ErrAborted.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*Result, error) {
	res := &Result{RunID: uuid.NewString(), Mode: req.Mode}
	if len(req.Modules) == 0 {
		return res, nil
	}

	var err error
	switch req.Mode {
	case ModeCurrent:
		err = a.analyzeCurrent(req, res)
	case ModeDaily:
		err = a.analyzeDaily(ctx, req, res)
	case ModeMonthly:
		err = a.analyzeMonthly(ctx, req, res)
	case ModeAnnual:
		err = a.analyzeAnnual(ctx, req, res)
	default:
		err = fmt.Errorf("unknown analysis mode %q", req.Mode)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// averageFactor is the mean shading factor across all modules at one
// instant.
func (a *Analyzer) averageFactor(modules []pvarray.Module, sun solar.Position) float64 {
	factors := a.calc.FactorAll(modules, sun)
	if len(factors) == 0 {
		return 0
	}
	return stat.Mean(factors, nil)
}

func (a *Analyzer) analyzeCurrent(req Request, res *Result) error {
	sun := solar.Calculate(req.Reference, req.Latitude, req.Longitude)
	f := a.averageFactor(req.Modules, sun)
	res.HourlySamples = []HourlySample{{Hour: req.Reference.UTC().Hour(), ShadingFactor: f}}
	res.ShadingLossFraction = f
	res.Sunrise = sun.Sunrise
	res.Sunset = sun.Sunset
	return nil
}

// analyzeDaily samples every whole hour from sunrise through sunset
// inclusive on the reference date.
func (a *Analyzer) analyzeDaily(ctx context.Context, req Request, res *Result) error {
	ref := req.Reference.UTC()
	noon := time.Date(ref.Year(), ref.Month(), ref.Day(), 12, 0, 0, 0, time.UTC)
	sun := solar.Calculate(noon, req.Latitude, req.Longitude)
	res.Sunrise = sun.Sunrise
	res.Sunset = sun.Sunset

	// Walk whole hours from sunrise through sunset inclusive. Absolute
	// timestamps keep this correct when sunset crosses UTC midnight.
	factors := make([]float64, 0, 16)
	for ts := sun.Sunrise.Truncate(time.Hour); !ts.After(sun.Sunset); ts = ts.Add(time.Hour) {
		if err := ctx.Err(); err != nil {
			return ErrAborted
		}
		f := a.averageFactor(req.Modules, solar.Calculate(ts, req.Latitude, req.Longitude))
		res.HourlySamples = append(res.HourlySamples, HourlySample{Hour: ts.Hour(), ShadingFactor: f})
		factors = append(factors, f)
		if f < peakSunThreshold {
			res.PeakSunHours++
		}
	}
	if len(factors) > 0 {
		res.ShadingLossFraction = stat.Mean(factors, nil)
	}
	return nil
}

// analyzeMonthly samples three representative days per month, every two
// daylight hours, fanning the twelve months out on a worker pool.
func (a *Analyzer) analyzeMonthly(ctx context.Context, req Request, res *Result) error {
	year := req.Reference.UTC().Year()

	pool, err := ants.NewPool(a.workers)
	if err != nil {
		return fmt.Errorf("creating sampler pool: %w", err)
	}
	defer pool.Release()

	monthly := make([]float64, 12)
	var wg sync.WaitGroup
	var done atomic.Int32
	for m := 0; m < 12; m++ {
		m := m
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			monthly[m] = a.sampleMonth(ctx, req, year, time.Month(m+1))
			n := int(done.Add(1))
			a.logger.Debugw("month sampled", "month", time.Month(m+1).String(), "factor", monthly[m])
			if req.OnProgress != nil {
				req.OnProgress(n, 12)
			}
		}); err != nil {
			wg.Done()
			return fmt.Errorf("submitting month sample: %w", err)
		}
	}
	wg.Wait()

	if ctx.Err() != nil {
		return ErrAborted
	}

	res.MonthlySamples = make([]MonthlySample, 12)
	inverse := make([]float64, 12)
	for m, f := range monthly {
		res.MonthlySamples[m] = MonthlySample{Month: time.Month(m + 1), ShadingFactor: f}
		inverse[m] = 1 - f
	}
	res.AnnualEnergyFactor = stat.Mean(inverse, nil)
	res.ShadingLossFraction = stat.Mean(monthly, nil)
	return nil
}

// sampleMonth averages the shading factor over the month's representative
// days, sampled every two daylight hours. Returns 0 when canceled; the
// caller discards the whole run in that case.
func (a *Analyzer) sampleMonth(ctx context.Context, req Request, year int, month time.Month) float64 {
	var factors []float64
	for _, day := range monthSampleDays {
		noon := time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
		sun := solar.Calculate(noon, req.Latitude, req.Longitude)
		for ts := sun.Sunrise.Truncate(time.Hour); !ts.After(sun.Sunset); ts = ts.Add(2 * time.Hour) {
			if ctx.Err() != nil {
				return 0
			}
			factors = append(factors, a.averageFactor(req.Modules, solar.Calculate(ts, req.Latitude, req.Longitude)))
		}
	}
	if len(factors) == 0 {
		return 0
	}
	return stat.Mean(factors, nil)
}

// analyzeAnnual is monthly sampling plus critical-period detection.
func (a *Analyzer) analyzeAnnual(ctx context.Context, req Request, res *Result) error {
	if err := a.analyzeMonthly(ctx, req, res); err != nil {
		return err
	}
	year := req.Reference.UTC().Year()
	for _, s := range res.MonthlySamples {
		if s.ShadingFactor <= criticalThreshold {
			continue
		}
		start := time.Date(year, s.Month, 1, 0, 0, 0, 0, time.UTC)
		res.CriticalPeriods = append(res.CriticalPeriods, CriticalPeriod{
			Start:    start,
			End:      start.AddDate(0, 1, 0).Add(-time.Second),
			Severity: s.ShadingFactor,
		})
	}
	return nil
}
