// Package world provides 2D map geometry and seeded map generation.
package world

import "math"

// Vec2 is a point or displacement on the continuous 2D map.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by f.
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

// Len returns the vector length.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the euclidean distance between two points.
func Dist(a, b Vec2) float64 { return a.Sub(b).Len() }

// Toward returns a point moved from a toward b by at most step.
// If the remaining distance is within step, b is returned exactly.
func Toward(a, b Vec2, step float64) Vec2 {
	d := Dist(a, b)
	if d <= step || d == 0 {
		return b
	}
	return a.Add(b.Sub(a).Scale(step / d))
}

// PolylineLength returns the total length of a waypoint sequence.
// Zero or one waypoint has length zero.
func PolylineLength(pts []Vec2) float64 {
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += Dist(pts[i-1], pts[i])
	}
	return total
}

// PointOnPolyline returns the point at the given distance along the polyline,
// clamped to the endpoints. An empty polyline returns the zero point.
func PointOnPolyline(pts []Vec2, dist float64) Vec2 {
	if len(pts) == 0 {
		return Vec2{}
	}
	if dist <= 0 {
		return pts[0]
	}
	for i := 1; i < len(pts); i++ {
		seg := Dist(pts[i-1], pts[i])
		if seg == 0 {
			continue
		}
		if dist <= seg {
			return pts[i-1].Add(pts[i].Sub(pts[i-1]).Scale(dist / seg))
		}
		dist -= seg
	}
	return pts[len(pts)-1]
}

// DistToSegment returns the distance from p to the segment a-b.
// Degenerate segments (a == b) fall back to point distance.
func DistToSegment(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	denom := ab.X*ab.X + ab.Y*ab.Y
	if denom == 0 {
		return Dist(p, a)
	}
	t := (p.Sub(a).X*ab.X + p.Sub(a).Y*ab.Y) / denom
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Dist(p, a.Add(ab.Scale(t)))
}

// DistToPolyline returns the shortest distance from p to any segment of the
// polyline. A single-point polyline is treated as a point.
func DistToPolyline(p Vec2, pts []Vec2) float64 {
	if len(pts) == 0 {
		return math.Inf(1)
	}
	if len(pts) == 1 {
		return Dist(p, pts[0])
	}
	best := math.Inf(1)
	for i := 1; i < len(pts); i++ {
		if d := DistToSegment(p, pts[i-1], pts[i]); d < best {
			best = d
		}
	}
	return best
}
