package catalog

// BuildingType identifies a building type. Extraction buildings stand on the
// map next to a deposit; amenity buildings live inside a settlement.
type BuildingType string

const (
	// Extraction buildings.
	BuildingFarm       BuildingType = "farm"
	BuildingLumberCamp BuildingType = "lumber_camp"
	BuildingQuarry     BuildingType = "quarry"
	BuildingMine       BuildingType = "mine"

	// Settlement amenities.
	BuildingHouse    BuildingType = "house"
	BuildingGranary  BuildingType = "granary"
	BuildingLibrary  BuildingType = "library"
	BuildingBarracks BuildingType = "barracks"
	BuildingWalls    BuildingType = "walls"
	BuildingMarket   BuildingType = "market"
)

// BuildingSpec is the static definition of a building type.
type BuildingSpec struct {
	Cost map[Resource]float64

	// Extraction buildings only.
	Extracts ResourceKind // deposit kind this building can target

	// Amenity effects, applied immediately on build.
	HousingBonus     int     // house
	FortBonus        int     // walls
	ResearchBonus    float64 // library, flat research points per tick
	ContentmentBonus float64 // granary
	IncomeBonus      float64 // market, multiplier on tax income

	RequiresTech TechID
}

// Amenity reports whether the building type is a settlement amenity rather
// than a map-placed extraction building.
func (s BuildingSpec) Amenity() bool { return s.Extracts == "" }

// Buildings is the building type catalog.
var Buildings = map[BuildingType]BuildingSpec{
	BuildingFarm:       {Cost: map[Resource]float64{Wood: 30}, Extracts: FertileLand},
	BuildingLumberCamp: {Cost: map[Resource]float64{Wood: 20}, Extracts: Forest},
	BuildingQuarry:     {Cost: map[Resource]float64{Wood: 40}, Extracts: StoneDeposit},
	BuildingMine:       {Cost: map[Resource]float64{Wood: 50, Stone: 20}, Extracts: IronDeposit, RequiresTech: TechIronworking},

	BuildingHouse:    {Cost: map[Resource]float64{Wood: 40}, HousingBonus: 50},
	BuildingGranary:  {Cost: map[Resource]float64{Wood: 60}, ContentmentBonus: 2},
	BuildingLibrary:  {Cost: map[Resource]float64{Wood: 50, Stone: 30}, ResearchBonus: 2},
	BuildingBarracks: {Cost: map[Resource]float64{Wood: 80, Stone: 20}},
	BuildingWalls:    {Cost: map[Resource]float64{Stone: 100}, FortBonus: 1, RequiresTech: TechMasonry},
	BuildingMarket:   {Cost: map[Resource]float64{Wood: 70, Stone: 30}, IncomeBonus: 1.2, RequiresTech: TechCurrency},
}

// ExtractionBuildingFor returns the building type that works a deposit kind.
func ExtractionBuildingFor(kind ResourceKind) (BuildingType, bool) {
	for bt, spec := range Buildings {
		if spec.Extracts == kind {
			return bt, true
		}
	}
	return "", false
}
