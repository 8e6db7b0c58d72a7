// Map generation using layered simplex noise.
// Fertility and ore fields place settlements and natural deposits; the whole
// map is a deterministic function of the seed. Runtime randomness (AI choices,
// entity ids) deliberately does NOT flow from this seed.
package world

import (
	"fmt"
	"math/rand"
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/veldtworks/marchlands/internal/catalog"
)

// GenConfig holds map generation parameters.
type GenConfig struct {
	Width   float64 // map extent in world units
	Height  float64
	Seed    int64
	Players int // one capital settlement per player

	NeutralVillages int
	Deposits        int // natural deposits to scatter
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:           2000,
		Height:          2000,
		Players:         2,
		NeutralVillages: 4,
		Deposits:        24,
	}
}

// SettlementSite is a placement decision for one initial settlement.
type SettlementSite struct {
	Name       string
	Pos        Vec2
	Capital    bool
	PlayerSlot int // index into the player list, -1 for neutral
	Population int
}

// DepositSite is a placement decision for one natural deposit.
type DepositSite struct {
	Kind   catalog.ResourceKind
	Pos    Vec2
	Amount float64
}

// GenResult is the full deterministic output of map generation.
type GenResult struct {
	Settlements []SettlementSite
	Deposits    []DepositSite
}

// Generate produces settlement and deposit placements for the configured map.
// The same config always yields the same result.
func Generate(cfg GenConfig) GenResult {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	fertility := opensimplex.NewNormalized(seed)
	ore := opensimplex.NewNormalized(seed + 1)
	rng := rand.New(rand.NewSource(seed + 200))

	var out GenResult

	// Capitals: spread across the map, one per player, snapped to the most
	// fertile nearby candidate.
	for i := 0; i < cfg.Players; i++ {
		frac := 0.0
		if cfg.Players > 1 {
			frac = float64(i) / float64(cfg.Players-1)
		}
		base := Vec2{
			X: cfg.Width * (0.2 + 0.6*frac),
			Y: cfg.Height * (0.25 + 0.5*float64(i%2)),
		}
		pos := bestNearby(fertility, base, cfg, rng)
		out.Settlements = append(out.Settlements, SettlementSite{
			Name:       settlementName(rng),
			Pos:        pos,
			Capital:    true,
			PlayerSlot: i,
			Population: 150,
		})
	}

	// Neutral villages on fertile sites, keeping distance from everything
	// placed so far.
	const minSpacing = 180
	for placed, attempts := 0, 0; placed < cfg.NeutralVillages && attempts < 500; attempts++ {
		pos := Vec2{X: rng.Float64() * cfg.Width, Y: rng.Float64() * cfg.Height}
		if fertility.Eval2(pos.X*0.004, pos.Y*0.004) < 0.45 {
			continue
		}
		if tooClose(pos, out.Settlements, minSpacing) {
			continue
		}
		out.Settlements = append(out.Settlements, SettlementSite{
			Name:       settlementName(rng),
			Pos:        pos,
			PlayerSlot: -1,
			Population: 60 + rng.Intn(60),
		})
		placed++
	}

	// Deposits: fertile land and forests follow the fertility field, stone
	// and iron the ore field.
	kinds := []catalog.ResourceKind{
		catalog.FertileLand, catalog.Forest, catalog.StoneDeposit, catalog.IronDeposit,
	}
	for i := 0; i < cfg.Deposits; i++ {
		kind := kinds[i%len(kinds)]
		field := fertility
		if kind == catalog.StoneDeposit || kind == catalog.IronDeposit {
			field = ore
		}

		// Sample a handful of positions and keep the one where the field
		// peaks, so deposits cluster naturally.
		var pos Vec2
		bestVal := -1.0
		for try := 0; try < 12; try++ {
			p := Vec2{X: rng.Float64() * cfg.Width, Y: rng.Float64() * cfg.Height}
			if v := field.Eval2(p.X*0.003, p.Y*0.003); v > bestVal {
				bestVal = v
				pos = p
			}
		}

		spec := catalog.ResourceKinds[kind]
		amount := spec.BaseAmount * (0.7 + 0.6*rng.Float64())
		out.Deposits = append(out.Deposits, DepositSite{Kind: kind, Pos: pos, Amount: amount})
	}

	return out
}

// bestNearby snaps a base position to the most fertile of a handful of
// jittered candidates around it.
func bestNearby(field opensimplex.Noise, base Vec2, cfg GenConfig, rng *rand.Rand) Vec2 {
	type scored struct {
		pos   Vec2
		score float64
	}
	candidates := make([]scored, 0, 8)
	for i := 0; i < 8; i++ {
		p := Vec2{
			X: clamp(base.X+(rng.Float64()-0.5)*200, 50, cfg.Width-50),
			Y: clamp(base.Y+(rng.Float64()-0.5)*200, 50, cfg.Height-50),
		}
		candidates = append(candidates, scored{p, field.Eval2(p.X*0.004, p.Y*0.004)})
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
	return candidates[0].pos
}

func tooClose(pos Vec2, placed []SettlementSite, min float64) bool {
	for _, s := range placed {
		if Dist(pos, s.Pos) < min {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var (
	namePrefixes = []string{"Ash", "Fen", "Thorn", "Wolf", "Ravens", "Stone", "Elder", "Mill", "Oak", "Iron"}
	nameSuffixes = []string{"ford", "holm", "stead", "bridge", "haven", "march", "gate", "field", "burgh", "dale"}
)

// settlementName draws a two-part name from the seeded rng.
func settlementName(rng *rand.Rand) string {
	return fmt.Sprintf("%s%s", namePrefixes[rng.Intn(len(namePrefixes))], nameSuffixes[rng.Intn(len(nameSuffixes))])
}
