package engine

// Balance constants. All tuned against each other; changing one in isolation
// shifts the whole economy.
const (
	// Settlement economy.
	FoodPerPersonPerTick = 0.1
	IncomePerPerson      = 0.5
	GrowthRate           = 0.002 // fed, under housing capacity
	StarvationRate       = 0.005
	PopulationFloor      = 10

	// Contentment and unrest.
	HighTaxBand          = 0.3 // contentment penalty above this tax rate
	LowTaxBand           = 0.15
	HighTaxPenaltyScale  = 20
	LowTaxBonus          = 1
	InvestmentBonusScale = 5
	GarrisonBonus        = 1
	ContentmentDrift     = 0.5
	OvercrowdingPenalty  = 2
	UnrestThreshold      = 50 // unrest accrues while contentment sits below this
	UnrestAccrualScale   = 0.1
	UnrestDecay          = 1
	CaptureContentment   = 30 // contentment after a settlement changes hands

	// Extraction and construction.
	RoadProximity      = 60  // road endpoint counts as reaching a point within this
	ExtractionFallback = 150 // proximity credit when no road connects
	RoadBuildRate      = 5.0 // length units per tick
	BuildingBuildRate  = 0.1 // progress per tick
	TrainTicks         = 10  // base ticks to train one garrison unit

	// Research.
	ResearchPerPop = 0.01

	// Movement.
	BaseSpeed         = 2.0
	OffRoadMultiplier = 0.6
	RoadTolerance     = 15 // lateral distance within which an army is "on road"
	EncounterRadius   = 30
	SiegeMargin       = 20

	// Battle.
	CasualtyRate      = 0.05
	MoraleLossFactor  = 50
	RoutMoraleFloor   = 20
	RoutStrengthFloor = 5

	// Victory.
	DominationShare   = 0.75
	EconomicThreshold = 1_000_000
)

// fortificationMod converts a settlement wall level into the defender's
// power multiplier.
func fortificationMod(level int) float64 {
	return 1 + 0.25*float64(level)
}
