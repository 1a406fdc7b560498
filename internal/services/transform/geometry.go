package transform

import "math"

// Point is a 2D coordinate in pixel space
type Point struct {
	X float64
	Y float64
}

func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// convexHull computes the convex hull of a point set (monotone chain),
// returned in counter-clockwise order without the closing point.
func convexHull(points []Point) []Point {
	if len(points) <= 2 {
		return append([]Point{}, points...)
	}

	sorted := append([]Point{}, points...)
	// Sort by X then Y.
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0; j-- {
			a, b := sorted[j-1], sorted[j]
			if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
				sorted[j-1], sorted[j] = b, a
			} else {
				break
			}
		}
	}

	hull := make([]Point, 0, 2*len(sorted))
	for _, p := range sorted {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// MinAreaRect computes the minimum-area bounding rectangle of a polygon.
// The rectangle may be rotated; degenerate inputs fall back to the
// axis-aligned bounding box. Corners come back in order around the
// rectangle.
func MinAreaRect(points []Point) [4]Point {
	if len(points) == 0 {
		return [4]Point{}
	}

	hull := convexHull(points)
	if len(hull) < 3 {
		return axisAlignedBox(points)
	}

	best := math.Inf(1)
	var bestBox [4]Point

	// Rotating calipers: the minimum-area rectangle shares a side with some
	// hull edge, so test every edge direction.
	for i := range hull {
		a := hull[i]
		b := hull[(i+1)%len(hull)]
		dx := b.X - a.X
		dy := b.Y - a.Y
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		ux := Point{X: dx / length, Y: dy / length}
		uy := Point{X: -ux.Y, Y: ux.X}

		minU, maxU := math.Inf(1), math.Inf(-1)
		minV, maxV := math.Inf(1), math.Inf(-1)
		for _, p := range hull {
			u := p.X*ux.X + p.Y*ux.Y
			v := p.X*uy.X + p.Y*uy.Y
			minU = math.Min(minU, u)
			maxU = math.Max(maxU, u)
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
		}

		area := (maxU - minU) * (maxV - minV)
		if area < best {
			best = area
			bestBox = [4]Point{
				{X: minU*ux.X + minV*uy.X, Y: minU*ux.Y + minV*uy.Y},
				{X: maxU*ux.X + minV*uy.X, Y: maxU*ux.Y + minV*uy.Y},
				{X: maxU*ux.X + maxV*uy.X, Y: maxU*ux.Y + maxV*uy.Y},
				{X: minU*ux.X + maxV*uy.X, Y: minU*ux.Y + maxV*uy.Y},
			}
		}
	}

	if math.IsInf(best, 1) {
		return axisAlignedBox(points)
	}
	return bestBox
}

func axisAlignedBox(points []Point) [4]Point {
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return [4]Point{
		{X: minX, Y: minY},
		{X: maxX, Y: minY},
		{X: maxX, Y: maxY},
		{X: minX, Y: maxY},
	}
}
