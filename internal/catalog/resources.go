// Package catalog holds the static game registries: technologies, unit types,
// building types, road types, and natural resource kinds. Everything here is
// process-wide read-only configuration, initialized once and never mutated.
package catalog

// Resource is a stockpilable resource type held by settlements.
type Resource string

const (
	Food  Resource = "food"
	Wood  Resource = "wood"
	Stone Resource = "stone"
	Iron  Resource = "iron"
)

// Resources lists all stockpile resource types in a fixed order.
var Resources = []Resource{Food, Wood, Stone, Iron}

// ResourceKind identifies a kind of natural resource deposit on the map.
type ResourceKind string

const (
	FertileLand  ResourceKind = "fertile_land"
	Forest       ResourceKind = "forest"
	StoneDeposit ResourceKind = "stone_deposit"
	IronDeposit  ResourceKind = "iron_deposit"
)

// ResourceKindSpec describes the extraction behavior of a deposit kind.
type ResourceKindSpec struct {
	Produces     Resource
	Renewable    bool    // renewable deposits regenerate toward their total
	BaseAmount   float64 // starting/total amount placed at map generation
	ExtractRate  float64 // units extracted per tick by a working building
	RegenRate    float64 // units regenerated per tick (renewable only)
	RequiresTech TechID  // research gate for AI exploitation ("" = none)
}

// ResourceKinds is the deposit catalog.
var ResourceKinds = map[ResourceKind]ResourceKindSpec{
	FertileLand: {
		Produces:    Food,
		Renewable:   true,
		BaseAmount:  5000,
		ExtractRate: 4,
		RegenRate:   2,
	},
	Forest: {
		Produces:    Wood,
		Renewable:   true,
		BaseAmount:  3000,
		ExtractRate: 3,
		RegenRate:   1,
	},
	StoneDeposit: {
		Produces:    Stone,
		BaseAmount:  2000,
		ExtractRate: 2,
	},
	IronDeposit: {
		Produces:     Iron,
		BaseAmount:   1500,
		ExtractRate:  1.5,
		RequiresTech: TechIronworking,
	},
}
