package router

import (
	"math"

	"github.com/flowcraft/edgeroute/lib/geo"
	"github.com/flowcraft/edgeroute/lib/svg"
)

// GenerateBezier produces the curved route used by workflow mode: a single
// cubic whose control points reach controlOffset into the flow direction.
//
// The target is first pulled back by ArrowOffset along the source→target
// direction so the arrowhead marker has room; control points are then
// derived from the pulled-back target.
func GenerateBezier(src, dst Endpoint, opts Options) *Path {
	opts = opts.WithDefaults()
	if degenerate(src.Pos, dst.Pos) {
		return straightLine(src.Pos, dst.Pos)
	}

	dir := src.Pos.VectorTo(dst.Pos).Unit()
	target := dst.Pos.AddVector(dir.Multiply(-opts.ArrowOffset))

	// control offsets derive from the raw deltas; only the endpoint is
	// pulled back
	dx := dst.Pos.X - src.Pos.X
	dy := dst.Pos.Y - src.Pos.Y

	var cp1, cp2 *geo.Point
	if flowIsVertical(src, dst, dx, dy) {
		controlOffset := math.Max(math.Abs(dy)/opts.SmoothingFactor, opts.ControlOffsetMin)
		sy := flowSign(dy)
		cp1 = geo.NewPoint(src.Pos.X+dx*0.1+opts.Spread, src.Pos.Y+controlOffset*sy)
		cp2 = geo.NewPoint(target.X-dx*0.1+opts.Spread, target.Y-controlOffset*sy)
	} else {
		controlOffset := math.Max(math.Abs(dx)/opts.SmoothingFactor, opts.ControlOffsetMin)
		sx := flowSign(dx)
		cp1 = geo.NewPoint(src.Pos.X+controlOffset*sx, src.Pos.Y+dy*0.1+opts.Spread)
		cp2 = geo.NewPoint(target.X-controlOffset*sx, target.Y-dy*0.1+opts.Spread)
	}

	ctx := svg.NewPathContext()
	ctx.StartAt(src.Pos)
	ctx.C(cp1, cp2, target)
	return newPath(ctx, 1)
}

// flowIsVertical decides which axis carries the control offset. Vertical
// port sides force a vertical flow and horizontal sides a horizontal one;
// when the sides don't agree the axis with greater separation wins.
func flowIsVertical(src, dst Endpoint, dx, dy float64) bool {
	if src.Side.IsVertical() && dst.Side.IsVertical() {
		return true
	}
	if src.Side.IsHorizontal() && dst.Side.IsHorizontal() {
		return false
	}
	return math.Abs(dy) > math.Abs(dx)
}

func flowSign(d float64) float64 {
	if d < 0 {
		return -1
	}
	return 1
}
