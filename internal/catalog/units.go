package catalog

// UnitType identifies a military unit type.
type UnitType string

const (
	UnitMilitia  UnitType = "militia"
	UnitSpearman UnitType = "spearman"
	UnitArcher   UnitType = "archer"
	UnitCavalry  UnitType = "cavalry"
	UnitCatapult UnitType = "catapult"
)

// UnitSpec is the static definition of a unit type.
type UnitSpec struct {
	Strength     float64
	Speed        float64 // relative movement speed (1.0 = baseline infantry)
	Cost         float64 // treasury cost to train one unit
	RequiresTech TechID  // research gate ("" = always available)
}

// Units is the unit type catalog.
var Units = map[UnitType]UnitSpec{
	UnitMilitia:  {Strength: 1, Speed: 1.0, Cost: 10},
	UnitSpearman: {Strength: 2, Speed: 1.0, Cost: 25},
	UnitArcher:   {Strength: 2.5, Speed: 1.0, Cost: 30},
	UnitCavalry:  {Strength: 4, Speed: 2.0, Cost: 60},
	UnitCatapult: {Strength: 6, Speed: 0.5, Cost: 120, RequiresTech: TechEngineering},
}

// UnitCost returns the total treasury cost of a unit order.
func UnitCost(units map[UnitType]int) float64 {
	total := 0.0
	for ut, n := range units {
		total += Units[ut].Cost * float64(n)
	}
	return total
}
