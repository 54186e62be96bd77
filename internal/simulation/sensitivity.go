package simulation

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/champsim/internal/balance"
	"github.com/cory-johannsen/champsim/internal/catalog"
)

// Attribute is an item stat the A/B analyzer can perturb.
type Attribute int

const (
	AttrAD Attribute = iota
	AttrAP
	AttrAS
	AttrHP
	AttrArmor
	AttrMR
	AttrHaste
	AttrLifesteal
)

// Attributes lists every perturbable attribute in display order.
var Attributes = []Attribute{AttrAD, AttrAP, AttrAS, AttrHP, AttrArmor, AttrMR, AttrHaste, AttrLifesteal}

var attributeNames = map[Attribute]string{
	AttrAD:        "AD",
	AttrAP:        "AP",
	AttrAS:        "AS",
	AttrHP:        "HP",
	AttrArmor:     "Armor",
	AttrMR:        "MR",
	AttrHaste:     "Haste",
	AttrLifesteal: "Lifesteal",
}

// String returns the display name of a.
func (a Attribute) String() string {
	return attributeNames[a]
}

// ParseAttribute maps a case-insensitive attribute name to an Attribute.
//
// Postcondition: returns an error for names outside the enumerated set.
func ParseAttribute(s string) (Attribute, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for _, a := range Attributes {
		if strings.ToLower(attributeNames[a]) == want {
			return a, nil
		}
	}
	return AttrAD, fmt.Errorf("unknown attribute %q", s)
}

// Perturb returns a copy of item with attr scaled by (1 + pct/100). The input
// record is left untouched.
func Perturb(item catalog.ItemRecord, attr Attribute, pct float64) catalog.ItemRecord {
	m := 1 + pct/100
	out := item
	switch attr {
	case AttrAD:
		out.AD *= m
	case AttrAP:
		out.AP *= m
	case AttrAS:
		out.AttackSpeed *= m
	case AttrHP:
		out.HP *= m
	case AttrArmor:
		out.Armor *= m
	case AttrMR:
		out.MR *= m
	case AttrHaste:
		out.Haste *= m
	case AttrLifesteal:
		out.Lifesteal *= m
	}
	return out
}

// zeroScore is the magnitude below which a baseline score counts as zero.
const zeroScore = 1e-9

// RelativeChange returns (b-a)/|a|*100, or 0 when a is numerically zero.
func RelativeChange(a, b float64) float64 {
	if math.Abs(a) < zeroScore {
		return 0
	}
	return (b - a) / math.Abs(a) * 100
}

// DeltaRow is one (champion, item) outcome of an A/B run.
type DeltaRow struct {
	Champion  string
	Category  string
	Item      string
	Variable  string
	ChangePct float64
	ScoreA    float64
	ScoreB    float64
	DeltaPct  float64
}

// Report is the result of an A/B run, rows grouped by champion.
type Report struct {
	Category  string
	Variable  string
	ChangePct float64
	Rows      []DeltaRow
	Warnings  []Warning
}

// Analyzer re-scores the best and worst items of a category with one item
// attribute perturbed.
type Analyzer struct {
	catalog *catalog.Catalog
	params  balance.Params
	sample  int
	logger  *zap.Logger
}

// NewAnalyzer creates an Analyzer evaluating under params and sampling the
// top and bottom sample items per champion.
//
// Precondition: cat must not be nil; sample >= 1. A nil logger disables logging.
func NewAnalyzer(cat *catalog.Catalog, params balance.Params, sample int, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sample < 1 {
		sample = 1
	}
	return &Analyzer{catalog: cat, params: params, sample: sample, logger: logger}
}

// Run analyzes rows of category with attr scaled by pct percent.
//
// Champions appear in the order they first occur in rows. Champions or items
// missing from the catalog are skipped and reported in Report.Warnings.
func (a *Analyzer) Run(rows []Row, category string, attr Attribute, pct float64) Report {
	rep := Report{Category: category, Variable: attr.String(), ChangePct: pct}

	var champions []string
	groups := make(map[string][]Row)
	for _, r := range rows {
		if r.Category != category {
			continue
		}
		if _, seen := groups[r.Champion]; !seen {
			champions = append(champions, r.Champion)
		}
		groups[r.Champion] = append(groups[r.Champion], r)
	}

	for _, name := range champions {
		champ, ok := a.catalog.Champion(name)
		if !ok {
			a.warn(&rep, Warning{Kind: MissingChampion, Champion: name})
			continue
		}
		for _, r := range selectExtremes(groups[name], a.sample) {
			item, ok := a.catalog.Item(r.Item)
			if !ok {
				a.warn(&rep, Warning{Kind: MissingItem, Champion: champ.Name, Item: r.Item})
				continue
			}
			base := balance.Evaluate(champ, item, a.params).Composite
			perturbed := balance.Evaluate(champ, Perturb(item, attr, pct), a.params).Composite
			rep.Rows = append(rep.Rows, DeltaRow{
				Champion:  champ.Name,
				Category:  r.Category,
				Item:      r.Item,
				Variable:  attr.String(),
				ChangePct: pct,
				ScoreA:    base,
				ScoreB:    perturbed,
				DeltaPct:  RelativeChange(base, perturbed),
			})
		}
	}
	return rep
}

func (a *Analyzer) warn(rep *Report, w Warning) {
	a.logger.Warn("skipping unresolved entry",
		zap.String("champion", w.Champion),
		zap.String("item", w.Item),
		zap.Error(w),
	)
	rep.Warnings = append(rep.Warnings, w)
}

// selectExtremes returns the n highest scored rows (descending) followed by the
// n lowest (ascending), each item at most once. Ties break by catalog order.
func selectExtremes(rows []Row, n int) []Row {
	desc := append([]Row(nil), rows...)
	sort.SliceStable(desc, func(i, j int) bool {
		if desc[i].Composite != desc[j].Composite {
			return desc[i].Composite > desc[j].Composite
		}
		return desc[i].Order < desc[j].Order
	})
	asc := append([]Row(nil), rows...)
	sort.SliceStable(asc, func(i, j int) bool {
		if asc[i].Composite != asc[j].Composite {
			return asc[i].Composite < asc[j].Composite
		}
		return asc[i].Order < asc[j].Order
	})

	picked := make(map[string]bool)
	var out []Row
	take := func(src []Row) {
		count := 0
		for _, r := range src {
			if count == n {
				return
			}
			count++
			if picked[r.Item] {
				continue
			}
			picked[r.Item] = true
			out = append(out, r)
		}
	}
	take(desc)
	take(asc)
	return out
}
