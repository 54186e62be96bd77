// Package catalog holds the static champion and item tables the balance engine reads.
package catalog

// StatCurve is a per-level scaling pair: the level 1 value and the growth per level.
type StatCurve struct {
	Base   float64 `yaml:"base"`
	Growth float64 `yaml:"growth"`
}

// At returns the additive level-scaled value base + growth*(level-1).
//
// Precondition: level >= 1. Values are not clamped.
func (c StatCurve) At(level int) float64 {
	return c.Base + c.Growth*float64(level-1)
}

// ChampionRecord is one row of the champion table.
type ChampionRecord struct {
	// Name is the display name.
	Name string `yaml:"name"`
	// Key is the canonical (english) key.
	Key string `yaml:"key"`
	// Role is the raw role category string, e.g. "Tank".
	Role string `yaml:"role"`
	// DamageType is the raw damage type string: physical, magical, mixed or true.
	DamageType string `yaml:"damage_type"`

	HP          StatCurve `yaml:"hp"`
	HPRegen     StatCurve `yaml:"hp_regen"`
	AD          StatCurve `yaml:"ad"`
	AttackSpeed StatCurve `yaml:"attack_speed"`
	Armor       StatCurve `yaml:"armor"`
	MR          StatCurve `yaml:"mr"`
	Mana        StatCurve `yaml:"mana"`
	ManaRegen   StatCurve `yaml:"mana_regen"`
	MoveSpeed   StatCurve `yaml:"move_speed"`
	Range       float64   `yaml:"range"`
}

// HPAt returns maximum health at level.
func (c ChampionRecord) HPAt(level int) float64 { return c.HP.At(level) }

// HPRegenAt returns health regeneration at level.
func (c ChampionRecord) HPRegenAt(level int) float64 { return c.HPRegen.At(level) }

// ADAt returns attack damage at level.
func (c ChampionRecord) ADAt(level int) float64 { return c.AD.At(level) }

// AttackSpeedAt returns attacks per second at level. Growth is a percentage
// applied multiplicatively: base * (1 + growth/100*(level-1)).
func (c ChampionRecord) AttackSpeedAt(level int) float64 {
	return c.AttackSpeed.Base * (1 + c.AttackSpeed.Growth/100*float64(level-1))
}

// ArmorAt returns armor at level.
func (c ChampionRecord) ArmorAt(level int) float64 { return c.Armor.At(level) }

// MRAt returns magic resist at level.
func (c ChampionRecord) MRAt(level int) float64 { return c.MR.At(level) }

// ManaAt returns maximum mana at level.
func (c ChampionRecord) ManaAt(level int) float64 { return c.Mana.At(level) }

// ManaRegenAt returns mana regeneration at level.
func (c ChampionRecord) ManaRegenAt(level int) float64 { return c.ManaRegen.At(level) }

// MoveSpeedAt returns movement speed at level.
func (c ChampionRecord) MoveSpeedAt(level int) float64 { return c.MoveSpeed.At(level) }

// ItemRecord is one row of the item table. All values are raw catalog bonuses.
type ItemRecord struct {
	Name     string `yaml:"name"`
	Key      string `yaml:"key"`
	Category string `yaml:"category"`

	AD           float64 `yaml:"ad"`
	AP           float64 `yaml:"ap"`
	AttackSpeed  float64 `yaml:"attack_speed"` // fraction, 0.25 == +25%
	Crit         float64 `yaml:"crit"`         // 0-1
	Haste        float64 `yaml:"haste"`
	Lifesteal    float64 `yaml:"lifesteal"` // 0-1 fraction of AD DPS
	FlatArmorPen float64 `yaml:"flat_armor_pen"`
	PctArmorPen  float64 `yaml:"pct_armor_pen"`
	FlatMagicPen float64 `yaml:"flat_magic_pen"`
	PctMagicPen  float64 `yaml:"pct_magic_pen"`

	HP            float64 `yaml:"hp"`
	Armor         float64 `yaml:"armor"`
	MR            float64 `yaml:"mr"`
	Tenacity      float64 `yaml:"tenacity"`
	HealingAmp    float64 `yaml:"healing_amp"`
	Mana          float64 `yaml:"mana"`
	HPRegen       float64 `yaml:"hp_regen"`
	ManaRegen     float64 `yaml:"mana_regen"`
	MoveSpeedFlat float64 `yaml:"ms_flat"`
	MoveSpeedPct  float64 `yaml:"ms_pct"`
}
