package router

import (
	"math"

	"github.com/flowcraft/edgeroute/lib/geo"
	"github.com/flowcraft/edgeroute/lib/svg"
)

// GenerateOrthogonal produces the Manhattan route used by architecture mode:
// a fixed lead perpendicular to each port's side, a routed middle joining
// the two lead tips with the fewest bends, and rounded corners.
func GenerateOrthogonal(src, dst Endpoint, opts Options) *Path {
	opts = opts.WithDefaults()
	if degenerate(src.Pos, dst.Pos) {
		return straightLine(src.Pos, dst.Pos)
	}

	terminal := trimEndpoint(dst.Pos, dst.Side, opts.ArrowTrimDistance)

	srcLead := src.Pos.AddVector(src.Side.Outward().Multiply(opts.LeadLength))
	dstLead := terminal.AddVector(dst.Side.Outward().Multiply(opts.LeadLength))

	points := geo.Route{src.Pos.Copy(), srcLead}
	points = append(points, middleWaypoints(srcLead, dstLead)...)
	points = append(points, dstLead, terminal)
	points = compactRoute(points)

	ctx := svg.NewPathContext()
	ctx.StartAt(points[0])
	curves := emitRounded(ctx, points, opts.CornerRadius)
	return newPath(ctx, curves)
}

// middleWaypoints joins the two lead tips orthogonally, splitting on the
// axis with greater separation.
func middleWaypoints(a, b *geo.Point) geo.Route {
	dx := b.X - a.X
	dy := b.Y - a.Y
	if dx == 0 || dy == 0 {
		// already aligned, straight middle
		return nil
	}
	if math.Abs(dx) >= math.Abs(dy) {
		midX := a.X + dx/2
		return geo.Route{geo.NewPoint(midX, a.Y), geo.NewPoint(midX, b.Y)}
	}
	midY := a.Y + dy/2
	return geo.Route{geo.NewPoint(a.X, midY), geo.NewPoint(b.X, midY)}
}

// GeneratePolyline emits straight segments through the given waypoints,
// trimming the terminal for the arrowhead. Used for collision-avoiding
// detours where waypoints are not axis-aligned.
func GeneratePolyline(points geo.Route, dstSide geo.Side, opts Options) *Path {
	opts = opts.WithDefaults()
	if len(points) < 2 {
		return straightLine(geo.NewPoint(0, 0), geo.NewPoint(0, 0))
	}
	for _, p := range points {
		if !p.IsFinite() {
			return straightLine(points[0], points[len(points)-1])
		}
	}

	last := len(points) - 1
	terminal := trimEndpoint(points[last], dstSide, opts.ArrowTrimDistance)

	ctx := svg.NewPathContext()
	ctx.StartAt(points[0])
	for i := 1; i < last; i++ {
		ctx.L(points[i])
	}
	ctx.L(terminal)
	return newPath(ctx, 0)
}
