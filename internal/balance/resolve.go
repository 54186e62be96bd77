package balance

import "github.com/cory-johannsen/champsim/internal/catalog"

// Resolved holds a champion's level-scaled attributes combined with an item's
// flat bonuses.
type Resolved struct {
	HP          float64
	Armor       float64
	MR          float64
	AD          float64
	AP          float64
	AttackSpeed float64
	Crit        float64
	Lifesteal   float64
	// ChampHPRegen and ItemHPRegen are kept apart for the sustain breakdown.
	ChampHPRegen float64
	ItemHPRegen  float64
}

// HPRegen returns total health regeneration per second.
func (r Resolved) HPRegen() float64 {
	return r.ChampHPRegen + r.ItemHPRegen
}

// Resolve combines champ at level with item.
//
// Precondition: level >= 1; level is not clamped.
// Postcondition: attack speed is champion attack speed scaled by (1 + item
// attack speed); all other stats are additive.
func Resolve(champ catalog.ChampionRecord, level int, item catalog.ItemRecord) Resolved {
	return Resolved{
		HP:           champ.HPAt(level) + item.HP,
		Armor:        champ.ArmorAt(level) + item.Armor,
		MR:           champ.MRAt(level) + item.MR,
		AD:           champ.ADAt(level) + item.AD,
		AP:           item.AP,
		AttackSpeed:  champ.AttackSpeedAt(level) * (1 + item.AttackSpeed),
		Crit:         item.Crit,
		Lifesteal:    item.Lifesteal,
		ChampHPRegen: champ.HPRegenAt(level),
		ItemHPRegen:  item.HPRegen,
	}
}
