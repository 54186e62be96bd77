// Package simulation drives the balance models across the item catalog: full
// leaderboards per champion and A/B sensitivity experiments on top of them.
package simulation

import (
	"sort"

	"go.uber.org/zap"

	"github.com/cory-johannsen/champsim/internal/balance"
	"github.com/cory-johannsen/champsim/internal/catalog"
)

// Row is one evaluated (champion, item) pair of a batch run.
type Row struct {
	Champion  string
	Category  string
	Item      string
	ADDPS     float64
	APDPS     float64
	EHP       float64
	TTK       float64
	Sustain   float64
	Composite float64
	// Order is the item's catalog position; it breaks score ties.
	Order int
}

// Simulator evaluates one champion against every catalog item.
type Simulator struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewSimulator creates a Simulator over cat.
//
// Precondition: cat must not be nil. A nil logger disables logging.
func NewSimulator(cat *catalog.Catalog, logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{catalog: cat, logger: logger}
}

// RunBatch evaluates champ with every item under p.
//
// Postcondition: returns exactly one Row per catalog item, ordered by
// category ascending then composite score descending (catalog order on ties).
func (s *Simulator) RunBatch(champ catalog.ChampionRecord, p balance.Params) []Row {
	items := s.catalog.Items()
	s.logger.Debug("running batch",
		zap.String("champion", champ.Name),
		zap.String("role", champ.Role),
		zap.String("damage_type", champ.DamageType),
		zap.Int("items", len(items)),
		zap.Int("level", p.Level),
		zap.Bool("robust", p.Robust),
	)

	rows := make([]Row, 0, len(items))
	for i, item := range items {
		m := balance.Evaluate(champ, item, p)
		rows = append(rows, Row{
			Champion:  champ.Name,
			Category:  item.Category,
			Item:      item.Name,
			ADDPS:     m.ADDPS,
			APDPS:     m.APDPS,
			EHP:       m.EHP,
			TTK:       m.TTK,
			Sustain:   m.Sustain.Combined,
			Composite: m.Composite,
			Order:     i,
		})
	}
	SortRows(rows)
	return rows
}

// SortRows orders rows by category ascending, then composite descending, then
// Order ascending. The order never depends on the input permutation.
func SortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Composite != b.Composite {
			return a.Composite > b.Composite
		}
		return a.Order < b.Order
	})
}
