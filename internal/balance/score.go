package balance

import (
	"fmt"
	"strings"
)

// Reference scales: the "typical maximum" of each metric. Dividing by them puts
// every term of the score on a comparable [0,~1] range.
const (
	RefADDPS   = 500.0
	RefAPDPS   = 150.0
	RefEHP     = 4000.0
	RefTTK     = 10.0
	RefSustain = 20.0
)

// Convention selects how the damage type split enters the composite score.
type Convention int

const (
	// ConventionRanking weighs offense by role weights alone. Used for
	// leaderboards and A/B analysis.
	ConventionRanking Convention = iota
	// ConventionQuery additionally scales AD and AP terms by the champion's
	// damage type weight. Used for single champion + item queries.
	ConventionQuery
)

// String returns the configuration name of c.
func (c Convention) String() string {
	if c == ConventionQuery {
		return "query"
	}
	return "ranking"
}

// ParseConvention maps "ranking" or "query" (case-insensitive) to a Convention.
func ParseConvention(s string) (Convention, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ranking":
		return ConventionRanking, nil
	case "query":
		return ConventionQuery, nil
	}
	return ConventionRanking, fmt.Errorf("unknown score convention %q", s)
}

// ScoreInputs are the raw metrics folded into the composite score.
type ScoreInputs struct {
	ADDPS   float64
	APDPS   float64
	EHP     float64
	TTK     float64
	Sustain float64
}

// Score returns the role-weighted composite of in.
//
// TTK and sustain terms are clamped to [0,1] after normalization; the DPS and
// EHP terms are not. typeWeight is only used under ConventionQuery.
func Score(w RoleWeights, in ScoreInputs, typeWeight float64, conv Convention) float64 {
	ad := in.ADDPS / RefADDPS
	ap := in.APDPS / RefAPDPS
	if conv == ConventionQuery {
		ad *= typeWeight
		ap *= 1 - typeWeight
	}
	return w.ADDPS*ad +
		w.APDPS*ap +
		w.EHP*(in.EHP/RefEHP) +
		w.TTK*clamp01(in.TTK/RefTTK) +
		w.Sustain*clamp01(in.Sustain/RefSustain)
}
