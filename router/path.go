package router

import (
	"math"

	"github.com/flowcraft/edgeroute/lib/geo"
	"github.com/flowcraft/edgeroute/lib/svg"
)

// Endpoint is a resolved port: its boundary coordinate and the node side it
// faces.
type Endpoint struct {
	Pos  *geo.Point
	Side geo.Side
}

// Path is a generated route: the ordered points it passes through and the
// serialized SVG path data.
type Path struct {
	Points geo.Route
	Data   string

	curves int
}

func newPath(ctx *svg.PathContext, curves int) *Path {
	return &Path{
		Points: ctx.Points,
		Data:   ctx.PathData(),
		curves: curves,
	}
}

// Complexity is a rough render-cost metric: one per waypoint, three extra
// per curve command.
func (p *Path) Complexity() float64 {
	return float64(len(p.Points)) + 3*float64(p.curves)
}

// trimEndpoint pulls the terminal point back from the port by dist along the
// port's outward normal, leaving room for the arrowhead marker. The final
// approach always travels inward, so the pull-back is the reverse of the
// last segment's direction.
func trimEndpoint(port *geo.Point, side geo.Side, dist float64) *geo.Point {
	return port.AddVector(side.Outward().Multiply(dist))
}

// straightLine is the degenerate-input fallback: a plain line between the
// raw untrimmed endpoints. Recoverable by design, never an error.
func straightLine(src, dst *geo.Point) *Path {
	ctx := svg.NewPathContext()
	if !src.IsFinite() {
		src = geo.NewPoint(0, 0)
	}
	if !dst.IsFinite() {
		dst = src.Copy()
	}
	ctx.StartAt(src)
	ctx.L(dst)
	return newPath(ctx, 0)
}

// degenerate reports whether the endpoint pair cannot support control-point
// math: non-finite coordinates or a zero-length primary vector.
func degenerate(src, dst *geo.Point) bool {
	if !src.IsFinite() || !dst.IsFinite() {
		return true
	}
	return src.X == dst.X && src.Y == dst.Y
}

// emitRounded walks orthogonal waypoints, rounding each interior corner with
// a cubic whose control points sit at the corner itself, which keeps the
// curve tangent to both segments.
func emitRounded(ctx *svg.PathContext, points geo.Route, radius float64) int {
	curves := 0
	for i := 1; i < len(points)-1; i++ {
		prev := points[i-1]
		corner := points[i]
		next := points[i+1]

		inDist := geo.EuclideanDistance(prev.X, prev.Y, corner.X, corner.Y)
		outDist := geo.EuclideanDistance(corner.X, corner.Y, next.X, next.Y)
		units := math.Min(radius, math.Min(inDist/2, outDist/2))
		if units <= 0 {
			ctx.L(corner)
			continue
		}

		inV := prev.VectorTo(corner).Unit().Multiply(units)
		outV := corner.VectorTo(next).Unit().Multiply(units)

		ctx.L(geo.NewPoint(corner.X-inV[0], corner.Y-inV[1]))
		ctx.C(corner.Copy(), corner.Copy(), geo.NewPoint(corner.X+outV[0], corner.Y+outV[1]))
		curves++
	}
	ctx.L(points[len(points)-1])
	return curves
}

// compactRoute drops consecutive duplicates and collinear interior points.
func compactRoute(points geo.Route) geo.Route {
	out := geo.Route{}
	for _, p := range points {
		if len(out) > 0 && out[len(out)-1].Equals(p) {
			continue
		}
		out = append(out, p)
	}
	if len(out) < 3 {
		return out
	}
	compacted := geo.Route{out[0]}
	for i := 1; i < len(out)-1; i++ {
		a := compacted[len(compacted)-1]
		b := out[i]
		c := out[i+1]
		cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
		dot := (b.X-a.X)*(c.X-b.X) + (b.Y-a.Y)*(c.Y-b.Y)
		// keep reversal points: a U-turn is collinear but changes direction
		if cross == 0 && dot > 0 {
			continue
		}
		compacted = append(compacted, b)
	}
	return append(compacted, out[len(out)-1])
}
