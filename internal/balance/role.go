// Package balance implements the closed-form combat models used to compare
// champion and item combinations: stat resolution, damage, survivability,
// sustain and the role-weighted composite score.
package balance

import "strings"

// Role is a champion archetype. It selects the weight vector of the composite score.
type Role int

const (
	// RoleBruiser is also the fallback for empty or unrecognised role strings.
	RoleBruiser Role = iota
	RoleTank
	RoleAssassin
	RoleMage
	RoleMarksman
	RoleSupport
)

var roleNames = map[Role]string{
	RoleBruiser:  "Bruiser",
	RoleTank:     "Tank",
	RoleAssassin: "Assassin",
	RoleMage:     "Mage",
	RoleMarksman: "Marksman",
	RoleSupport:  "Support",
}

var rolesByName = map[string]Role{
	"bruiser":  RoleBruiser,
	"tank":     RoleTank,
	"assassin": RoleAssassin,
	"mage":     RoleMage,
	"marksman": RoleMarksman,
	"support":  RoleSupport,
}

// String returns the canonical role name.
func (r Role) String() string {
	if n, ok := roleNames[r]; ok {
		return n
	}
	return roleNames[RoleBruiser]
}

// ParseRole maps s to a Role, ignoring case and surrounding whitespace.
//
// Postcondition: unknown or empty strings return RoleBruiser; ok reports
// whether s matched a known role.
func ParseRole(s string) (r Role, ok bool) {
	r, ok = rolesByName[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return RoleBruiser, false
	}
	return r, true
}

// DamageType is the champion's damage split category.
type DamageType int

const (
	// DamagePhysical is also the fallback for empty or unrecognised strings.
	DamagePhysical DamageType = iota
	DamageMagical
	DamageMixed
	DamageTrue
)

var damageTypes = map[string]DamageType{
	"physical": DamagePhysical,
	"magical":  DamageMagical,
	"mixed":    DamageMixed,
	"true":     DamageTrue,
}

// typeWeights is the physical share of each damage type. True damage counts
// mostly as physical since it scales off AD in practice.
var typeWeights = map[DamageType]float64{
	DamagePhysical: 1.0,
	DamageMagical:  0.0,
	DamageMixed:    0.5,
	DamageTrue:     0.8,
}

// ParseDamageType maps s to a DamageType, ignoring case and surrounding whitespace.
//
// Postcondition: unknown or empty strings return DamagePhysical; ok reports a match.
func ParseDamageType(s string) (d DamageType, ok bool) {
	d, ok = damageTypes[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return DamagePhysical, false
	}
	return d, true
}

// TypeWeight returns the physical share in [0,1] used to blend physical and
// magical output.
func (d DamageType) TypeWeight() float64 {
	if w, ok := typeWeights[d]; ok {
		return w
	}
	return 1.0
}

// String returns the lower-case damage type name.
func (d DamageType) String() string {
	switch d {
	case DamageMagical:
		return "magical"
	case DamageMixed:
		return "mixed"
	case DamageTrue:
		return "true"
	default:
		return "physical"
	}
}
