package simulation

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/champsim/internal/balance"
	"github.com/cory-johannsen/champsim/internal/catalog"
)

// Query is the per-call scenario chosen by the caller.
type Query struct {
	Level         int
	DefenderArmor float64
	DefenderMR    float64
	PhysMix       float64
	Robust        bool
}

// Options holds the engine-wide settings that callers do not vary per query.
type Options struct {
	// Incoming is the opponent damage profile used for time-to-kill.
	Incoming balance.Incoming
	// BatchConvention scores leaderboard rows.
	BatchConvention balance.Convention
	// QueryConvention scores single Evaluate calls.
	QueryConvention balance.Convention
	// Sensitivity is the scenario A/B runs evaluate under.
	Sensitivity balance.Params
	// Sample is the number of top and bottom items per champion in A/B runs.
	Sample int
}

// DefaultOptions returns the reference opponent, ranking convention for
// batches, query convention for single evaluations, and a level 18 A/B
// scenario against 100 armor / 100 MR sampling 3 items from each end.
func DefaultOptions() Options {
	sens := balance.DefaultParams()
	sens.DefenderArmor = 100
	sens.DefenderMR = 100
	return Options{
		Incoming:        balance.DefaultIncoming,
		BatchConvention: balance.ConventionRanking,
		QueryConvention: balance.ConventionQuery,
		Sensitivity:     sens,
		Sample:          3,
	}
}

// Engine is the query interface over a catalog. It keeps the most recent
// leaderboard of every champion as the current result set for A/B runs.
type Engine struct {
	catalog  *catalog.Catalog
	opts     Options
	sim      *Simulator
	analyzer *Analyzer
	logger   *zap.Logger

	mu      sync.RWMutex
	results []Row
}

// NewEngine creates an Engine over cat.
//
// Precondition: cat must not be nil. A nil logger disables logging.
func NewEngine(cat *catalog.Catalog, opts Options, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		catalog:  cat,
		opts:     opts,
		sim:      NewSimulator(cat, logger),
		analyzer: NewAnalyzer(cat, opts.Sensitivity, opts.Sample, logger),
		logger:   logger,
	}
}

func (e *Engine) params(q Query, conv balance.Convention) balance.Params {
	return balance.Params{
		Level:         q.Level,
		DefenderArmor: q.DefenderArmor,
		DefenderMR:    q.DefenderMR,
		PhysMix:       q.PhysMix,
		Robust:        q.Robust,
		Incoming:      e.opts.Incoming,
		Convention:    conv,
	}
}

// Evaluate scores one champion with one item under the query convention.
//
// Postcondition: returns an error wrapping catalog.ErrChampionNotFound or
// catalog.ErrItemNotFound when either name does not resolve.
func (e *Engine) Evaluate(champion, item string, q Query) (balance.Metrics, error) {
	champ, ok := e.catalog.Champion(champion)
	if !ok {
		return balance.Metrics{}, fmt.Errorf("evaluate: %w: %q", catalog.ErrChampionNotFound, champion)
	}
	it, ok := e.catalog.Item(item)
	if !ok {
		return balance.Metrics{}, fmt.Errorf("evaluate: %w: %q", catalog.ErrItemNotFound, item)
	}
	return balance.Evaluate(champ, it, e.params(q, e.opts.QueryConvention)), nil
}

// RunBatch builds the leaderboard of champion across every item and stores it
// in the result set, replacing that champion's previous rows.
//
// Postcondition: returns an error wrapping catalog.ErrChampionNotFound when
// champion does not resolve; the result set is then unchanged.
func (e *Engine) RunBatch(champion string, q Query) ([]Row, error) {
	champ, ok := e.catalog.Champion(champion)
	if !ok {
		return nil, fmt.Errorf("run batch: %w: %q", catalog.ErrChampionNotFound, champion)
	}
	rows := e.sim.RunBatch(champ, e.params(q, e.opts.BatchConvention))

	e.mu.Lock()
	kept := e.results[:0:0]
	for _, r := range e.results {
		if r.Champion != champ.Name {
			kept = append(kept, r)
		}
	}
	e.results = append(kept, rows...)
	e.mu.Unlock()

	out := make([]Row, len(rows))
	copy(out, rows)
	return out, nil
}

// RunSensitivity runs an A/B analysis of category over the current result set.
//
// Postcondition: returns an error only for an unknown variable; missing
// catalog entries are reported in Report.Warnings.
func (e *Engine) RunSensitivity(category, variable string, deltaPct float64) (Report, error) {
	attr, err := ParseAttribute(variable)
	if err != nil {
		return Report{}, fmt.Errorf("run sensitivity: %w", err)
	}
	return e.analyzer.Run(e.Results(), category, attr, deltaPct), nil
}

// LoadResults replaces the result set, e.g. with a leaderboard read back from
// a flat table.
func (e *Engine) LoadResults(rows []Row) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.results = append([]Row(nil), rows...)
}

// Results returns a copy of the current result set.
func (e *Engine) Results() []Row {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]Row(nil), e.results...)
}

// Categories returns the distinct categories of the current result set in
// ascending order.
func (e *Engine) Categories() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, r := range e.results {
		if !seen[r.Category] {
			seen[r.Category] = true
			out = append(out, r.Category)
		}
	}
	sort.Strings(out)
	return out
}

// Catalog returns the catalog the engine reads.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Options returns the engine-wide settings.
func (e *Engine) Options() Options {
	return e.opts
}
