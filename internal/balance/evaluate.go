package balance

import "github.com/cory-johannsen/champsim/internal/catalog"

// Params describes the scenario an evaluation runs under.
type Params struct {
	// Level is the champion level, >= 1.
	Level int
	// DefenderArmor and DefenderMR are the opponent's mitigation stats.
	DefenderArmor float64
	DefenderMR    float64
	// PhysMix is the physical share in [0,1] of incoming damage.
	PhysMix float64
	// Robust selects worst-case EHP and TTK instead of the PhysMix blend.
	Robust bool
	// Incoming is the opponent's damage profile.
	Incoming Incoming
	// Convention selects how the damage type weight enters the score.
	Convention Convention
}

// DefaultParams returns a level 18 scenario against 40 armor / 50 MR with the
// reference incoming damage and the ranking convention.
func DefaultParams() Params {
	return Params{
		Level:         18,
		DefenderArmor: 40,
		DefenderMR:    50,
		PhysMix:       DefaultPhysMix,
		Incoming:      DefaultIncoming,
		Convention:    ConventionRanking,
	}
}

// Metrics is the full outcome of one champion + item evaluation.
type Metrics struct {
	Role       Role
	DamageType DamageType
	Weights    RoleWeights
	Stats      Resolved

	ADDPS    float64
	APDPS    float64
	MixedDPS float64

	Survivability Survivability
	// EHP and TTK are the values selected by Params.Robust.
	EHP float64
	TTK float64

	Sustain   SustainRate
	Composite float64
}

// Evaluate runs the champion and item through stat resolution, the damage and
// survivability models and the composite scorer.
//
// Precondition: p.Level >= 1.
// Postcondition: identical inputs yield identical Metrics.
func Evaluate(champ catalog.ChampionRecord, item catalog.ItemRecord, p Params) Metrics {
	role, _ := ParseRole(champ.Role)
	dmgType, _ := ParseDamageType(champ.DamageType)
	w := WeightsFor(role)
	tw := dmgType.TypeWeight()

	st := Resolve(champ, p.Level, item)
	adDPS := PhysicalDPS(st.AD, st.AttackSpeed, st.Crit, p.DefenderArmor)
	apDPS := MagicalDPS(st.AP, p.DefenderMR)

	surv := Survive(st.HP, st.Armor, st.MR, p.PhysMix, p.Incoming)
	ehp := surv.EHP(p.Robust)
	ttk := surv.TTK(p.Robust)
	sus := Sustain(st.ChampHPRegen, st.ItemHPRegen, st.Lifesteal, adDPS)

	comp := Score(w, ScoreInputs{
		ADDPS:   adDPS,
		APDPS:   apDPS,
		EHP:     ehp,
		TTK:     ttk,
		Sustain: sus.Combined,
	}, tw, p.Convention)

	return Metrics{
		Role:          role,
		DamageType:    dmgType,
		Weights:       w,
		Stats:         st,
		ADDPS:         adDPS,
		APDPS:         apDPS,
		MixedDPS:      MixedDPS(adDPS, apDPS, tw),
		Survivability: surv,
		EHP:           ehp,
		TTK:           ttk,
		Sustain:       sus,
		Composite:     comp,
	}
}
