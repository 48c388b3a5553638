package geo

import (
	"fmt"
)

type Segment struct {
	Start *Point
	End   *Point
}

func NewSegment(from, to *Point) *Segment {
	return &Segment{from, to}
}

func (segment Segment) Intersects(otherSegment Segment) bool {
	return IntersectionPoint(segment.Start, segment.End, otherSegment.Start, otherSegment.End) != nil
}

func (s Segment) ToString() string {
	return fmt.Sprintf("%v -> %v", s.Start.ToString(), s.End.ToString())
}

func (segment Segment) Length() float64 {
	return EuclideanDistance(segment.Start.X, segment.Start.Y, segment.End.X, segment.End.Y)
}

func (segment Segment) ToVector() Vector {
	return NewVector(segment.End.X-segment.Start.X, segment.End.Y-segment.Start.Y)
}

// IntersectsBox reports whether the segment crosses or touches any of the
// box's four edges. A segment fully inside the box intersects no edge; use
// Box.Contains on an endpoint for that case.
func (segment Segment) IntersectsBox(b *Box) bool {
	tl := b.TopLeft
	tr := NewPoint(tl.X+b.Width, tl.Y)
	br := NewPoint(tr.X, tr.Y+b.Height)
	bl := NewPoint(tl.X, br.Y)

	edges := []Segment{
		{tl, tr},
		{tr, br},
		{br, bl},
		{bl, tl},
	}
	for _, edge := range edges {
		if segment.Intersects(edge) {
			return true
		}
	}
	return false
}
