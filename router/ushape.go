package router

import (
	"math"

	"github.com/flowcraft/edgeroute/lib/geo"
	"github.com/flowcraft/edgeroute/lib/svg"
)

// NeedsUShape reports whether the same-side short-hop condition holds: the
// target sits too close along the source port's outward axis to fit the
// fixed lead, so a plain lead would immediately collide with it.
func NeedsUShape(src Endpoint, dstBox *geo.Box, opts Options) bool {
	opts = opts.WithDefaults()
	switch src.Side {
	case geo.Right:
		return dstBox.Left()-src.Pos.X < opts.LeadLength
	case geo.Left:
		return src.Pos.X-dstBox.Right() < opts.LeadLength
	case geo.Bottom:
		return dstBox.Top()-src.Pos.Y < opts.LeadLength
	case geo.Top:
		return src.Pos.Y-dstBox.Bottom() < opts.LeadLength
	default:
		return false
	}
}

// GenerateUShape routes out past both node boxes' outer edge plus the safe
// clearance, travels parallel, and re-enters the target on the same side it
// left the source. The route never flips side mid-way; dst must already be
// resolved on src's side (see diagram.ResolvePortPositionOnSide).
func GenerateUShape(src, dst Endpoint, srcBox, dstBox *geo.Box, opts Options) *Path {
	opts = opts.WithDefaults()
	if degenerate(src.Pos, dst.Pos) || srcBox == nil || dstBox == nil {
		return straightLine(src.Pos, dst.Pos)
	}

	terminal := trimEndpoint(dst.Pos, src.Side, opts.ArrowTrimDistance)

	var mid1, mid2 *geo.Point
	switch src.Side {
	case geo.Right:
		outer := math.Max(srcBox.Right(), dstBox.Right()) + opts.SafeClear
		mid1 = geo.NewPoint(outer, src.Pos.Y)
		mid2 = geo.NewPoint(outer, terminal.Y)
	case geo.Left:
		outer := math.Min(srcBox.Left(), dstBox.Left()) - opts.SafeClear
		mid1 = geo.NewPoint(outer, src.Pos.Y)
		mid2 = geo.NewPoint(outer, terminal.Y)
	case geo.Bottom:
		outer := math.Max(srcBox.Bottom(), dstBox.Bottom()) + opts.SafeClear
		mid1 = geo.NewPoint(src.Pos.X, outer)
		mid2 = geo.NewPoint(terminal.X, outer)
	case geo.Top:
		outer := math.Min(srcBox.Top(), dstBox.Top()) - opts.SafeClear
		mid1 = geo.NewPoint(src.Pos.X, outer)
		mid2 = geo.NewPoint(terminal.X, outer)
	default:
		return straightLine(src.Pos, dst.Pos)
	}

	points := compactRoute(geo.Route{src.Pos.Copy(), mid1, mid2, terminal})

	ctx := svg.NewPathContext()
	ctx.StartAt(points[0])
	curves := emitRounded(ctx, points, opts.CornerRadius)
	return newPath(ctx, curves)
}
