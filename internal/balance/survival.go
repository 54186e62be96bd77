package balance

import "math"

// DefaultPhysMix is the assumed physical share of incoming damage.
const DefaultPhysMix = 0.7

// Incoming is the assumed opponent damage per second by damage kind.
type Incoming struct {
	Phys float64
	Mag  float64
}

// DefaultIncoming is the reference opponent.
var DefaultIncoming = Incoming{Phys: 150, Mag: 70}

// Mix blends the incoming profile by physMix.
func (in Incoming) Mix(physMix float64) float64 {
	return physMix*in.Phys + (1-physMix)*in.Mag
}

// ArmorFactor returns the effective health multiplier sqrt((100+armor)/100).
// The same curve applies to magic resist.
func ArmorFactor(armor float64) float64 {
	return math.Sqrt((100 + armor) / 100)
}

// Survivability holds effective health and time-to-kill per damage profile.
type Survivability struct {
	EHPPhys float64
	EHPMag  float64
	EHPMix  float64
	TTKPhys float64
	TTKMag  float64
	TTKMix  float64
}

// EffectiveHealth returns health scaled by armor and magic resist, plus the
// physMix blend of the two.
func EffectiveHealth(hp, armor, mr, physMix float64) (phys, mag, mix float64) {
	phys = hp * ArmorFactor(armor)
	mag = hp * ArmorFactor(mr)
	mix = physMix*phys + (1-physMix)*mag
	return phys, mag, mix
}

// TimeToKill divides each effective health by the matching incoming damage.
// Incoming damage is floored at 1 per second.
func TimeToKill(ehpPhys, ehpMag, ehpMix float64, in Incoming, physMix float64) (phys, mag, mix float64) {
	phys = ehpPhys / math.Max(1, in.Phys)
	mag = ehpMag / math.Max(1, in.Mag)
	mix = ehpMix / math.Max(1, in.Mix(physMix))
	return phys, mag, mix
}

// Survive computes EHP and TTK for every profile.
func Survive(hp, armor, mr, physMix float64, in Incoming) Survivability {
	var s Survivability
	s.EHPPhys, s.EHPMag, s.EHPMix = EffectiveHealth(hp, armor, mr, physMix)
	s.TTKPhys, s.TTKMag, s.TTKMix = TimeToKill(s.EHPPhys, s.EHPMag, s.EHPMix, in, physMix)
	return s
}

// EHP returns the blended effective health, or the worse of the physical and
// magical values when robust is set.
func (s Survivability) EHP(robust bool) float64 {
	if robust {
		return math.Min(s.EHPPhys, s.EHPMag)
	}
	return s.EHPMix
}

// TTK returns the blended time-to-kill, or the worse of the physical and
// magical values when robust is set.
func (s Survivability) TTK(robust bool) float64 {
	if robust {
		return math.Min(s.TTKPhys, s.TTKMag)
	}
	return s.TTKMix
}

// SustainRate is health recovered per second.
type SustainRate struct {
	Regen    float64
	Vamp     float64
	Combined float64
}

// Sustain sums regeneration and lifesteal healing. Lifesteal is a fraction of adDPS.
func Sustain(champRegen, itemRegen, lifesteal, adDPS float64) SustainRate {
	regen := champRegen + itemRegen
	vamp := lifesteal * adDPS
	return SustainRate{Regen: regen, Vamp: vamp, Combined: regen + vamp}
}
