package entity

import (
	"github.com/veldtworks/marchlands/internal/catalog"
	"github.com/veldtworks/marchlands/internal/world"
)

// Road is a constructed path between waypoints. Created incomplete by a build
// action, advanced by construction each tick, removed by an explicit action.
type Road struct {
	ID        string           `json:"id"`
	Owner     PlayerID         `json:"owner"`
	Type      catalog.RoadType `json:"type"`
	Waypoints []world.Vec2     `json:"waypoints"`

	BuiltLength float64 `json:"built_length"` // 0 <= BuiltLength <= TotalLength
	Condition   float64 `json:"condition"`    // [0,1]
}

// NewRoad creates an unbuilt road along the given waypoints.
func NewRoad(id string, owner PlayerID, rt catalog.RoadType, waypoints []world.Vec2) *Road {
	return &Road{ID: id, Owner: owner, Type: rt, Waypoints: waypoints, Condition: 1}
}

// TotalLength returns the polyline length of the road.
func (r *Road) TotalLength() float64 {
	return world.PolylineLength(r.Waypoints)
}

// Complete reports whether construction has reached the full length.
func (r *Road) Complete() bool {
	return r.BuiltLength >= r.TotalLength()
}

// TotalCost returns the full per-resource construction cost of the road.
func (r *Road) TotalCost() map[catalog.Resource]float64 {
	length := r.TotalLength()
	spec := catalog.Roads[r.Type]
	cost := make(map[catalog.Resource]float64, len(spec.CostPerLength))
	for res, per := range spec.CostPerLength {
		cost[res] = per * length
	}
	return cost
}
