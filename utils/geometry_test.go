package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentIntersect(t *testing.T) {
	testCases := []struct {
		name           string
		p1, p2, p3, p4 Vector
		expected       Vector
		intersects     bool
	}{
		{"Crossing diagonals", Vector{0, 0}, Vector{10, 10}, Vector{0, 10}, Vector{10, 0}, Vector{5, 5}, true},
		{"Touching at endpoint", Vector{0, 0}, Vector{5, 0}, Vector{5, -5}, Vector{5, 5}, Vector{5, 0}, true},
		{"Parallel", Vector{0, 0}, Vector{10, 0}, Vector{0, 1}, Vector{10, 1}, Vector{}, false},
		{"Coincident", Vector{0, 0}, Vector{10, 0}, Vector{2, 0}, Vector{8, 0}, Vector{}, false},
		{"Short of the target", Vector{0, 0}, Vector{4, 0}, Vector{5, -5}, Vector{5, 5}, Vector{}, false},
		{"Beside the target", Vector{0, 0}, Vector{10, 0}, Vector{5, 1}, Vector{5, 5}, Vector{}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, ok := SegmentIntersect(tc.p1, tc.p2, tc.p3, tc.p4)
			assert.Equal(t, tc.intersects, ok)
			if tc.intersects {
				assert.InDelta(t, tc.expected.X, result.X, 1e-9)
				assert.InDelta(t, tc.expected.Y, result.Y, 1e-9)
			}
		})
	}
}

func TestSegmentIntersect_SymmetricUnderEndpointSwap(t *testing.T) {
	segments := [][4]Vector{
		{{0, 0}, {10, 10}, {0, 10}, {10, 0}},
		{{-3, 2}, {7, -1}, {1, -4}, {2, 6}},
		{{100, 240}, {50, 260}, {72, 0}, {72, 480}},
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	}

	for _, s := range segments {
		base, baseOk := SegmentIntersect(s[0], s[1], s[2], s[3])
		variants := [][4]Vector{
			{s[1], s[0], s[2], s[3]},
			{s[0], s[1], s[3], s[2]},
			{s[1], s[0], s[3], s[2]},
		}
		for _, v := range variants {
			result, ok := SegmentIntersect(v[0], v[1], v[2], v[3])
			require.Equal(t, baseOk, ok, "segments %v", v)
			if ok {
				assert.InDelta(t, base.X, result.X, 1e-9)
				assert.InDelta(t, base.Y, result.Y, 1e-9)
			}
		}
	}
}

func TestBallIntercept(t *testing.T) {
	paddle := Rect{Left: 100, Top: 100, Right: 110, Bottom: 160}
	radius := 5.0

	testCases := []struct {
		name       string
		center     Vector
		nx, ny     float64
		intercepts bool
		side       Side
		point      Vector
	}{
		{"Moving right into left face", Vector{90, 130}, 10, 0, true, SideLeft, Vector{95, 130}},
		{"Moving left into right face", Vector{120, 130}, -10, 0, true, SideRight, Vector{115, 130}},
		{"Moving down onto top face", Vector{105, 90}, 0, 10, true, SideTop, Vector{105, 95}},
		{"Moving up onto bottom face", Vector{105, 170}, 0, -10, true, SideBottom, Vector{105, 165}},
		{"Moving right but stops short", Vector{80, 130}, 5, 0, false, "", Vector{}},
		{"Moving right above the paddle", Vector{90, 80}, 10, 0, false, "", Vector{}},
		{"Moving away", Vector{90, 130}, -10, 0, false, "", Vector{}},
		{"Zero displacement", Vector{95, 130}, 0, 0, false, "", Vector{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hit, ok := BallIntercept(tc.center, radius, paddle, tc.nx, tc.ny)
			assert.Equal(t, tc.intercepts, ok)
			if tc.intercepts {
				assert.Equal(t, tc.side, hit.Side)
				assert.InDelta(t, tc.point.X, hit.Point.X, 1e-9)
				assert.InDelta(t, tc.point.Y, hit.Point.Y, 1e-9)
			}
		})
	}
}

func TestBallIntercept_VerticalEdgeTakesPriority(t *testing.T) {
	paddle := Rect{Left: 100, Top: 100, Right: 110, Bottom: 160}

	// Diagonal path crossing both the grown left edge and the grown top edge.
	hit, ok := BallIntercept(Vector{90, 90}, 5, paddle, 20, 20)
	require.True(t, ok)
	assert.Equal(t, SideLeft, hit.Side)
	assert.InDelta(t, 95.0, hit.Point.X, 1e-9)
}

func TestBallIntercept_ZeroDisplacementNeverHits(t *testing.T) {
	rects := []Rect{
		{Left: 0, Top: 0, Right: 10, Bottom: 10},
		{Left: -5, Top: -5, Right: 5, Bottom: 5},
	}
	centers := []Vector{{0, 0}, {5, 5}, {-5, 0}, {100, 100}}
	for _, r := range rects {
		for _, c := range centers {
			_, ok := BallIntercept(c, 3, r, 0, 0)
			assert.False(t, ok, "rect %v center %v", r, c)
		}
	}
}

func TestUnfold(t *testing.T) {
	top, bottom := 17.0, 463.0

	testCases := []struct {
		name     string
		y        float64
		expected float64
	}{
		{"Inside stays", 200, 200},
		{"On top bound", top, top},
		{"Just past bottom", bottom + 3, bottom - 3},
		{"Just past top", top - 4, top + 4},
		{"Two bounces", bottom + (bottom - top) + 10, top + 10},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, Unfold(tc.y, top, bottom), 1e-9)
		})
	}
}

func TestUnfold_FarOutsideLandsInside(t *testing.T) {
	top, bottom := 17.0, 463.0
	for _, y := range []float64{-5000, -1234.5, 2000, 9999, 463.0001} {
		result := Unfold(y, top, bottom)
		assert.GreaterOrEqual(t, result, top, "y=%v", y)
		assert.LessOrEqual(t, result, bottom, "y=%v", y)
	}
}
