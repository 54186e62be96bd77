package balance

// RoleWeights is the weight vector of the composite score. The five weights of
// each role sum to 1.0.
type RoleWeights struct {
	ADDPS   float64
	APDPS   float64
	EHP     float64
	TTK     float64
	Sustain float64
}

// Sum returns the total of all five weights.
func (w RoleWeights) Sum() float64 {
	return w.ADDPS + w.APDPS + w.EHP + w.TTK + w.Sustain
}

// DefaultWeights is the balanced vector used for Bruiser and any unknown role.
var DefaultWeights = RoleWeights{ADDPS: 0.35, APDPS: 0.35, EHP: 0.1, TTK: 0.1, Sustain: 0.1}

var roleWeights = map[Role]RoleWeights{
	RoleTank:     {ADDPS: 0.05, APDPS: 0.05, EHP: 0.55, TTK: 0.25, Sustain: 0.1},
	RoleMage:     {ADDPS: 0.25, APDPS: 0.55, EHP: 0.05, TTK: 0.1, Sustain: 0.05},
	RoleMarksman: {ADDPS: 0.5, APDPS: 0.05, EHP: 0.1, TTK: 0.2, Sustain: 0.15},
	RoleAssassin: {ADDPS: 0.4, APDPS: 0.4, EHP: 0.05, TTK: 0.1, Sustain: 0.05},
	RoleSupport:  {ADDPS: 0.1, APDPS: 0.2, EHP: 0.2, TTK: 0.2, Sustain: 0.3},
}

// WeightsFor returns the weight vector of r.
//
// Postcondition: roles without an explicit entry, including RoleBruiser,
// return DefaultWeights.
func WeightsFor(r Role) RoleWeights {
	if w, ok := roleWeights[r]; ok {
		return w
	}
	return DefaultWeights
}
