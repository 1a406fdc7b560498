package transform

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func rectArea(box [4]Point) float64 {
	side1 := math.Hypot(box[1].X-box[0].X, box[1].Y-box[0].Y)
	side2 := math.Hypot(box[2].X-box[1].X, box[2].Y-box[1].Y)
	return side1 * side2
}

func sortedCorners(box [4]Point) []Point {
	corners := box[:]
	sorted := append([]Point{}, corners...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})
	return sorted
}

func TestMinAreaRectAxisAligned(t *testing.T) {
	// An axis-aligned rectangle is its own minimal bounding rectangle.
	box := MinAreaRect([]Point{
		{X: 10, Y: 10}, {X: 40, Y: 10}, {X: 40, Y: 30}, {X: 10, Y: 30},
	})

	want := []Point{{X: 10, Y: 10}, {X: 10, Y: 30}, {X: 40, Y: 10}, {X: 40, Y: 30}}
	got := sortedCorners(box)
	for i := range want {
		assert.InDelta(t, want[i].X, got[i].X, 1e-9)
		assert.InDelta(t, want[i].Y, got[i].Y, 1e-9)
	}
	assert.InDelta(t, 600.0, rectArea(box), 1e-9)
}

func TestMinAreaRectRotated(t *testing.T) {
	// A unit square rotated 45 degrees: the minimal rectangle hugs the
	// diamond (area 2), far smaller than its axis-aligned bounding box
	// (area 4).
	box := MinAreaRect([]Point{
		{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0},
	})
	assert.InDelta(t, 2.0, rectArea(box), 1e-9)
}

func TestMinAreaRectCoversAllPoints(t *testing.T) {
	points := []Point{
		{X: 3, Y: 7}, {X: 12, Y: 2}, {X: 20, Y: 9}, {X: 14, Y: 16}, {X: 5, Y: 13}, {X: 9, Y: 8},
	}
	box := MinAreaRect(points)

	// Every input point projects inside the rectangle's edge frame.
	ux := Point{X: box[1].X - box[0].X, Y: box[1].Y - box[0].Y}
	uy := Point{X: box[3].X - box[0].X, Y: box[3].Y - box[0].Y}
	lenU := math.Hypot(ux.X, ux.Y)
	lenV := math.Hypot(uy.X, uy.Y)

	for _, p := range points {
		dx := p.X - box[0].X
		dy := p.Y - box[0].Y
		u := (dx*ux.X + dy*ux.Y) / lenU
		v := (dx*uy.X + dy*uy.Y) / lenV
		assert.GreaterOrEqual(t, u, -1e-9)
		assert.LessOrEqual(t, u, lenU+1e-9)
		assert.GreaterOrEqual(t, v, -1e-9)
		assert.LessOrEqual(t, v, lenV+1e-9)
	}
}

func TestMinAreaRectDegenerate(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, [4]Point{}, MinAreaRect(nil))
	})

	t.Run("single point", func(t *testing.T) {
		box := MinAreaRect([]Point{{X: 5, Y: 5}})
		for _, corner := range box {
			assert.Equal(t, Point{X: 5, Y: 5}, corner)
		}
	})

	t.Run("collinear points fall back to bounding box", func(t *testing.T) {
		box := MinAreaRect([]Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}})
		got := sortedCorners(box)
		assert.Equal(t, Point{X: 0, Y: 0}, got[0])
		assert.Equal(t, Point{X: 10, Y: 0}, got[3])
	})
}
