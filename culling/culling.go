// Package culling decides which connections are worth routing at all: it
// tests endpoints against the expanded viewport, classifies render detail
// from zoom and distance, and groups sibling connections for bundling.
package culling

import (
	"sort"

	"github.com/flowcraft/edgeroute/diagram"
	"github.com/flowcraft/edgeroute/lib/geo"
)

const (
	DefaultCullingMargin   = 100.0
	DefaultBundleThreshold = 100
)

type RenderLevel string

const (
	RenderHigh   RenderLevel = "high"
	RenderMedium RenderLevel = "medium"
	RenderLow    RenderLevel = "low"
)

type Options struct {
	CullingMargin   float64
	BundleThreshold int
}

func (o Options) withDefaults() Options {
	if o.CullingMargin <= 0 {
		o.CullingMargin = DefaultCullingMargin
	}
	if o.BundleThreshold <= 0 {
		o.BundleThreshold = DefaultBundleThreshold
	}
	return o
}

// ExpandedViewport grows the viewport by margin/zoom so partially offscreen
// geometry still renders while panning.
func ExpandedViewport(vp diagram.ViewportBounds, margin float64) *geo.Box {
	zoom := vp.Scale
	if zoom <= 0 {
		zoom = 1
	}
	return vp.Box().Expanded(margin / zoom)
}

// ShouldRenderConnection reports whether a connection between the two node
// boxes is visible: either box overlaps the expanded viewport, or the
// straight line between their centers crosses it (a long edge passing
// through with both nodes offscreen).
func ShouldRenderConnection(srcBox, dstBox *geo.Box, vp diagram.ViewportBounds, opts Options) bool {
	opts = opts.withDefaults()
	expanded := ExpandedViewport(vp, opts.CullingMargin)

	if srcBox.Overlaps(expanded) || dstBox.Overlaps(expanded) {
		return true
	}
	chord := geo.NewSegment(srcBox.Center(), dstBox.Center())
	return chord.IntersectsBox(expanded)
}

// LevelOfDetail classifies the geometric detail tier for a connection from
// the zoom level and the zoom-scaled distance between its endpoints.
func LevelOfDetail(srcBox, dstBox *geo.Box, zoom float64) RenderLevel {
	src := srcBox.Center()
	dst := dstBox.Center()
	scaled := geo.EuclideanDistance(src.X, src.Y, dst.X, dst.Y) * zoom

	if zoom >= 1.0 && scaled <= 500 {
		return RenderHigh
	}
	if zoom >= 0.5 && scaled <= 1000 {
		return RenderMedium
	}
	return RenderLow
}

// Bundle is a set of sibling connections sharing a group key. The primary
// (lowest id) renders at full detail with a count label; the rest are hidden
// or thinned.
type Bundle struct {
	Key     string
	Primary *diagram.Connection
	Count   int
}

// BundleGroups groups connections by group key once the connection count
// exceeds the bundling threshold. Below the threshold every connection
// renders individually and nil is returned.
func BundleGroups(conns []*diagram.Connection, opts Options) []Bundle {
	opts = opts.withDefaults()
	if len(conns) <= opts.BundleThreshold {
		return nil
	}

	byKey := make(map[string][]*diagram.Connection)
	for _, c := range conns {
		k := c.GroupKey()
		byKey[k] = append(byKey[k], c)
	}

	bundles := make([]Bundle, 0, len(byKey))
	for k, group := range byKey {
		sort.Slice(group, func(i, j int) bool { return group[i].ID < group[j].ID })
		bundles = append(bundles, Bundle{
			Key:     k,
			Primary: group[0],
			Count:   len(group),
		})
	}
	sort.Slice(bundles, func(i, j int) bool { return bundles[i].Key < bundles[j].Key })
	return bundles
}

// SiblingOrder returns each connection's index and total among the siblings
// sharing its group key, ordered by id. The index feeds the cache key so
// parallel connections between the same endpoints get distinct paths.
func SiblingOrder(conns []*diagram.Connection) map[string]SiblingPosition {
	byKey := make(map[string][]*diagram.Connection)
	for _, c := range conns {
		k := c.GroupKey()
		byKey[k] = append(byKey[k], c)
	}

	out := make(map[string]SiblingPosition, len(conns))
	for _, group := range byKey {
		sort.Slice(group, func(i, j int) bool { return group[i].ID < group[j].ID })
		for i, c := range group {
			out[c.ID] = SiblingPosition{Index: i, Total: len(group)}
		}
	}
	return out
}

// SiblingPosition is a connection's stable position among the siblings
// sharing its group key.
type SiblingPosition struct {
	Index int
	Total int
}
