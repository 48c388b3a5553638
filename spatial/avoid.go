package spatial

import (
	"math"

	"github.com/flowcraft/edgeroute/lib/geo"
)

// AvoidingWaypoints tests the straight line between src and dst against the
// indexed obstacles (each expanded by margin). When the line is clear it
// returns nil; otherwise it offsets the midpoint perpendicular to the line,
// one candidate per side, and keeps whichever side leaves fewer
// intersections across both sub-segments. Endpoints' own nodes are excluded
// via excludeIDs.
func AvoidingWaypoints(src, dst *geo.Point, idx *Index, margin float64, excludeIDs ...string) geo.Route {
	if idx == nil || src.Equals(dst) {
		return nil
	}

	excluded := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	queryBox := boundingBoxOf(src, dst).Expanded(margin)
	var blockers []*geo.Box
	var clearance float64
	for _, o := range idx.QueryRect(queryBox) {
		if _, skip := excluded[o.ID]; skip {
			continue
		}
		expanded := o.Box.Expanded(margin)
		if segmentBlocked(src, dst, expanded) {
			blockers = append(blockers, expanded)
			need := math.Max(o.Box.Width, o.Box.Height)/2 + 2*margin
			clearance = math.Max(clearance, need)
		}
	}
	if len(blockers) == 0 {
		return nil
	}

	mid := geo.Midpoint(src, dst)
	nx, ny := geo.GetUnitNormalVector(src.X, src.Y, dst.X, dst.Y)

	left := geo.NewPoint(mid.X+nx*clearance, mid.Y+ny*clearance)
	right := geo.NewPoint(mid.X-nx*clearance, mid.Y-ny*clearance)

	if detourCost(src, dst, left, blockers) <= detourCost(src, dst, right, blockers) {
		return geo.Route{src.Copy(), left, dst.Copy()}
	}
	return geo.Route{src.Copy(), right, dst.Copy()}
}

// detourCost counts intersections of both sub-segments against the blockers.
func detourCost(src, dst, via *geo.Point, blockers []*geo.Box) int {
	cost := 0
	for _, b := range blockers {
		if segmentBlocked(src, via, b) {
			cost++
		}
		if segmentBlocked(via, dst, b) {
			cost++
		}
	}
	return cost
}

func segmentBlocked(a, b *geo.Point, box *geo.Box) bool {
	seg := geo.NewSegment(a, b)
	if seg.IntersectsBox(box) {
		return true
	}
	// fully inside crosses no edge
	return box.ContainsStrict(a) && box.ContainsStrict(b)
}

func boundingBoxOf(a, b *geo.Point) *geo.Box {
	minX := math.Min(a.X, b.X)
	minY := math.Min(a.Y, b.Y)
	return geo.NewBox(
		geo.NewPoint(minX, minY),
		math.Abs(a.X-b.X),
		math.Abs(a.Y-b.Y),
	)
}
