package balance

const (
	// CritMultiplier is the damage multiplier of a critical strike.
	CritMultiplier = 1.75
	// BaseSkillDamage is the flat damage of the reference ability.
	BaseSkillDamage = 300.0
	// APRatio is the ability power scaling of the reference ability.
	APRatio = 0.8
	// SkillCooldown is the reference ability cooldown in seconds.
	SkillCooldown = 5.0
)

// mitigation returns the damage multiplier 100/(100+defense). Negative defense
// is treated as 0 so the multiplier never exceeds 1.
func mitigation(defense float64) float64 {
	return 100 / (100 + nonNegative(defense))
}

// PhysicalDPS returns auto-attack damage per second against defenderArmor.
//
// Postcondition: critChance is clamped to [0,1].
func PhysicalDPS(ad, attackSpeed, critChance, defenderArmor float64) float64 {
	critMul := 1 + clamp01(critChance)*(CritMultiplier-1)
	return ad * attackSpeed * mitigation(defenderArmor) * critMul
}

// MagicalDPS returns damage per second of the reference ability against defenderMR.
func MagicalDPS(ap, defenderMR float64) float64 {
	return (BaseSkillDamage + APRatio*ap) * mitigation(defenderMR) / SkillCooldown
}

// MixedDPS blends physical and magical output by typeWeight, the physical share.
func MixedDPS(physDPS, magDPS, typeWeight float64) float64 {
	return physDPS*typeWeight + magDPS*(1-typeWeight)
}
