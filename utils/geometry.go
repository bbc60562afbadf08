package utils

// Vector is a plain numeric pair used for positions, displacements and
// intersection results.
type Vector struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// Rect is an axis aligned rectangle. Top < Bottom in screen coordinates.
type Rect struct {
	Left   float64 `json:"left" msgpack:"left"`
	Top    float64 `json:"top" msgpack:"top"`
	Right  float64 `json:"right" msgpack:"right"`
	Bottom float64 `json:"bottom" msgpack:"bottom"`
}

// Side names the edge of a rectangle that was struck.
type Side string

const (
	SideLeft   Side = "left"
	SideRight  Side = "right"
	SideTop    Side = "top"
	SideBottom Side = "bottom"
)

// Intercept is a hit point together with the side of the target it lies on.
type Intercept struct {
	Point Vector
	Side  Side
}

// SegmentIntersect returns the point where segment p1-p2 crosses segment p3-p4.
// Parallel or coincident segments, and crossings outside either segment, report false.
func SegmentIntersect(p1, p2, p3, p4 Vector) (Vector, bool) {
	denom := ((p4.Y - p3.Y) * (p2.X - p1.X)) - ((p4.X - p3.X) * (p2.Y - p1.Y))
	if denom == 0 {
		return Vector{}, false
	}

	ua := (((p4.X - p3.X) * (p1.Y - p3.Y)) - ((p4.Y - p3.Y) * (p1.X - p3.X))) / denom
	if ua < 0 || ua > 1 {
		return Vector{}, false
	}

	ub := (((p2.X - p1.X) * (p1.Y - p3.Y)) - ((p2.Y - p1.Y) * (p1.X - p3.X))) / denom
	if ub < 0 || ub > 1 {
		return Vector{}, false
	}

	return Vector{
		X: p1.X + ua*(p2.X-p1.X),
		Y: p1.Y + ua*(p2.Y-p1.Y),
	}, true
}

// BallIntercept sweeps a circle of the given radius from center by (nx, ny)
// and tests it against rect grown by the radius. The near vertical edge is
// tested first; the near horizontal edge is only tested when that misses.
func BallIntercept(center Vector, radius float64, rect Rect, nx, ny float64) (Intercept, bool) {
	end := SumVectors(center, Vector{X: nx, Y: ny})

	grown := Rect{
		Left:   rect.Left - radius,
		Top:    rect.Top - radius,
		Right:  rect.Right + radius,
		Bottom: rect.Bottom + radius,
	}

	if nx < 0 {
		if pt, ok := SegmentIntersect(center, end,
			Vector{X: grown.Right, Y: grown.Top},
			Vector{X: grown.Right, Y: grown.Bottom}); ok {
			return Intercept{Point: pt, Side: SideRight}, true
		}
	} else if nx > 0 {
		if pt, ok := SegmentIntersect(center, end,
			Vector{X: grown.Left, Y: grown.Top},
			Vector{X: grown.Left, Y: grown.Bottom}); ok {
			return Intercept{Point: pt, Side: SideLeft}, true
		}
	}

	if ny < 0 {
		if pt, ok := SegmentIntersect(center, end,
			Vector{X: grown.Left, Y: grown.Bottom},
			Vector{X: grown.Right, Y: grown.Bottom}); ok {
			return Intercept{Point: pt, Side: SideBottom}, true
		}
	} else if ny > 0 {
		if pt, ok := SegmentIntersect(center, end,
			Vector{X: grown.Left, Y: grown.Top},
			Vector{X: grown.Right, Y: grown.Top}); ok {
			return Intercept{Point: pt, Side: SideTop}, true
		}
	}

	return Intercept{}, false
}

// Unfold mirrors y across top and bottom until it lies inside [top, bottom].
// This replays wall bounces of a straight-line extrapolation analytically.
// bottom must be greater than top.
func Unfold(y, top, bottom float64) float64 {
	for y < top || y > bottom {
		if y < top {
			y = top + (top - y)
		} else {
			y = bottom - (y - bottom)
		}
	}
	return y
}
