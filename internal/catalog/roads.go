package catalog

// RoadType identifies a road construction type.
type RoadType string

const (
	RoadDirt  RoadType = "dirt"
	RoadStone RoadType = "stone"
	RoadPaved RoadType = "paved"
	RoadRail  RoadType = "rail"
)

// RoadSpec is the static definition of a road type.
type RoadSpec struct {
	SpeedMultiplier float64 // applied to army speed while traveling on the road
	CostPerLength   map[Resource]float64
	RequiresTech    TechID
}

// Roads is the road type catalog.
var Roads = map[RoadType]RoadSpec{
	RoadDirt:  {SpeedMultiplier: 1.0, CostPerLength: map[Resource]float64{Wood: 0.1}},
	RoadStone: {SpeedMultiplier: 1.3, CostPerLength: map[Resource]float64{Stone: 0.2}},
	RoadPaved: {SpeedMultiplier: 1.6, CostPerLength: map[Resource]float64{Stone: 0.3, Wood: 0.1}, RequiresTech: TechEngineering},
	RoadRail:  {SpeedMultiplier: 3.0, CostPerLength: map[Resource]float64{Iron: 0.3, Wood: 0.2}, RequiresTech: TechRailroads},
}
