package engine

import (
	"time"

	"github.com/flowcraft/edgeroute/culling"
	"github.com/flowcraft/edgeroute/pathcache"
	"github.com/flowcraft/edgeroute/router"
	"github.com/flowcraft/edgeroute/scheduler"
	"github.com/flowcraft/edgeroute/spatial"
)

// Config is the engine's tuning surface. Zero values take the documented
// defaults.
type Config struct {
	// routing
	LeadLength        float64
	SafeClear         float64
	ArrowOffset       float64
	ArrowTrimDistance float64
	SmoothingFactor   float64
	ControlOffsetMin  float64
	CornerRadius      float64
	// sibling connections fan their curves apart by this much per step
	SiblingSpread float64

	// spatial index
	GridSize float64

	// culling
	CullingMargin   float64
	BundleThreshold int

	// cache
	CacheCapacity int
	CacheTTL      time.Duration

	// scheduler
	BatchSize int

	// node count above which viewport queries go through the spatial index
	// instead of scanning every node
	LargeGraphThreshold int
}

const (
	DefaultSiblingSpread       = 14.0
	DefaultLargeGraphThreshold = 200
)

func (c Config) withDefaults() Config {
	if c.GridSize <= 0 {
		c.GridSize = spatial.DefaultGridSize
	}
	if c.CullingMargin <= 0 {
		c.CullingMargin = culling.DefaultCullingMargin
	}
	if c.BundleThreshold <= 0 {
		c.BundleThreshold = culling.DefaultBundleThreshold
	}
	if c.CacheCapacity <= 0 {
		c.CacheCapacity = pathcache.DefaultCapacity
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = pathcache.DefaultTTL
	}
	if c.BatchSize <= 0 {
		c.BatchSize = scheduler.DefaultBatchSize
	}
	if c.SiblingSpread <= 0 {
		c.SiblingSpread = DefaultSiblingSpread
	}
	if c.LargeGraphThreshold <= 0 {
		c.LargeGraphThreshold = DefaultLargeGraphThreshold
	}
	return c
}

func (c Config) routerOptions() router.Options {
	return router.Options{
		LeadLength:        c.LeadLength,
		SafeClear:         c.SafeClear,
		ArrowOffset:       c.ArrowOffset,
		ArrowTrimDistance: c.ArrowTrimDistance,
		SmoothingFactor:   c.SmoothingFactor,
		ControlOffsetMin:  c.ControlOffsetMin,
		CornerRadius:      c.CornerRadius,
	}.WithDefaults()
}

func (c Config) cullingOptions() culling.Options {
	return culling.Options{
		CullingMargin:   c.CullingMargin,
		BundleThreshold: c.BundleThreshold,
	}
}
