package model

import "errors"

var ErrEmptyPath = errors.New("path needs at least one point")

type Point struct {
	X float64
	Y float64
}

type Segment struct {
	From Point
	To   Point
}

// Path is a closed polygon outline. The last point implicitly connects back to the first one.
type Path struct {
	Points []Point
}

// ToPath builds a closed path that starts at the first point and visits the rest in order.
func ToPath(points []Point) (Path, error) {
	if len(points) == 0 {
		return Path{}, ErrEmptyPath
	}

	copied := make([]Point, len(points))
	copy(copied, points)

	return Path{Points: copied}, nil
}

func (p Path) Start() Point {
	if len(p.Points) == 0 {
		return Point{}
	}

	return p.Points[0]
}

// Edges returns every segment of the outline, including the closing one.
func (p Path) Edges() []Segment {
	n := len(p.Points)
	if n == 0 {
		return nil
	}

	edges := make([]Segment, 0, n)

	for i := range n {
		edges = append(edges, Segment{From: p.Points[i], To: p.Points[(i+1)%n]})
	}

	return edges
}
