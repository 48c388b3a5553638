// Package engine ties the routing pipeline together: culling filters the
// working set, the cache answers repeats, the generators produce path
// strings on misses, and the scheduler batches recomputation into frames.
//
// One Engine instance per diagram session. The engine is single-threaded by
// design: the host must serialize calls onto one scheduling domain (the
// paint-frame loop); the engine itself takes no locks.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cdr.dev/slog"

	"github.com/flowcraft/edgeroute/culling"
	"github.com/flowcraft/edgeroute/diagram"
	"github.com/flowcraft/edgeroute/lib/log"
	"github.com/flowcraft/edgeroute/pathcache"
	"github.com/flowcraft/edgeroute/router"
	"github.com/flowcraft/edgeroute/scheduler"
	"github.com/flowcraft/edgeroute/spatial"
)

type PathResult struct {
	PathString  string
	CacheHit    bool
	RenderLevel culling.RenderLevel
}

type Metrics struct {
	VisibleCount          int
	CacheSize             int
	CacheHitRate          float64
	LastComputeDurationMs float64
}

type Engine struct {
	cfg Config

	snapshot  *diagram.Snapshot
	overrides *diagram.Overrides
	cache     *pathcache.Cache
	index     *spatial.Index
	queue     *scheduler.Queue

	// sibling positions by connection id, rebuilt on SetConnections
	siblings map[string]culling.SiblingPosition

	viewport    diagram.ViewportBounds
	hasViewport bool

	indexDirty    bool
	visibleCount  int
	lastComputeMs float64

	// injectable clock for duration metrics in tests
	now func() time.Time
}

func New(cfg Config, frame scheduler.Frame) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		cfg:       cfg,
		snapshot:  diagram.NewSnapshot(nil, nil),
		overrides: diagram.NewOverrides(),
		cache:     pathcache.New(cfg.CacheCapacity, cfg.CacheTTL),
		index:     spatial.NewIndex(cfg.GridSize),
		queue:     scheduler.NewQueue(frame, cfg.BatchSize),
		siblings:  map[string]culling.SiblingPosition{},
		now:       time.Now,
	}
}

// SetNodes replaces the node/port snapshot. The spatial index is rebuilt
// lazily on next use since node-set changes often arrive in bursts.
func (e *Engine) SetNodes(nodes []*diagram.NodeBox, ports []*diagram.Port) {
	e.snapshot = diagram.NewSnapshot(nodes, ports)
	e.indexDirty = true
}

// SetConnections refreshes sibling ordering (index/total per group key).
func (e *Engine) SetConnections(conns []*diagram.Connection) {
	e.siblings = culling.SiblingOrder(conns)
}

func (e *Engine) SetViewport(vp diagram.ViewportBounds) {
	e.viewport = vp
	e.hasViewport = true
}

func (e *Engine) zoom() float64 {
	if e.hasViewport && e.viewport.Scale > 0 {
		return e.viewport.Scale
	}
	return 1
}

func (e *Engine) rebuildIndexIfDirty() {
	if !e.indexDirty {
		return
	}
	obstacles := make([]spatial.Obstacle, 0, e.snapshot.NodeCount())
	for _, n := range e.snapshot.Nodes() {
		n = e.overrides.Apply(n)
		obstacles = append(obstacles, spatial.Obstacle{ID: n.ID, Box: n.Box()})
	}
	e.index.Rebuild(obstacles)
	e.indexDirty = false
}

// node returns the snapshot node with any drag override applied.
func (e *Engine) node(id string) (*diagram.NodeBox, error) {
	n, err := e.snapshot.Node(id)
	if err != nil {
		return nil, err
	}
	return e.overrides.Apply(n), nil
}

// ComputePath resolves the connection's endpoints, consults the cache, and
// generates the path on a miss. An unresolvable node or port returns
// diagram.ErrUnknownReference and is fatal for this connection only;
// degenerate geometry falls back to a straight line and is not an error.
func (e *Engine) ComputePath(ctx context.Context, conn *diagram.Connection) (PathResult, error) {
	start := e.now()
	defer func() {
		e.lastComputeMs = float64(e.now().Sub(start).Microseconds()) / 1000
	}()

	srcNode, err := e.node(conn.SourceNodeID)
	if err != nil {
		return PathResult{}, err
	}
	dstNode, err := e.node(conn.TargetNodeID)
	if err != nil {
		return PathResult{}, err
	}
	srcPort, err := e.snapshot.Port(conn.SourcePortID)
	if err != nil {
		return PathResult{}, err
	}
	dstPort, err := e.snapshot.Port(conn.TargetPortID)
	if err != nil {
		return PathResult{}, err
	}

	srcPos, srcSide, err := diagram.ResolvePortPosition(srcNode, srcPort, conn.Mode)
	if err != nil {
		return PathResult{}, err
	}
	dstPos, dstSide, err := diagram.ResolvePortPosition(dstNode, dstPort, conn.Mode)
	if err != nil {
		return PathResult{}, err
	}

	sibling := e.siblings[conn.ID]
	if sibling.Total == 0 {
		sibling = culling.SiblingPosition{Index: 0, Total: 1}
	}

	level := culling.LevelOfDetail(srcNode.Box(), dstNode.Box(), e.zoom())
	key := cacheKey(conn, srcNode, dstNode, srcPort, dstPort, sibling)

	if entry, ok := e.cache.Get(key); ok {
		return PathResult{PathString: entry.PathData, CacheHit: true, RenderLevel: entry.RenderLevel}, nil
	}

	src := router.Endpoint{Pos: srcPos, Side: srcSide}
	dst := router.Endpoint{Pos: dstPos, Side: dstSide}
	path := e.generate(ctx, conn, src, dst, srcNode, dstNode, dstPort, sibling)

	e.cache.Put(key, path.Data, path.Complexity(), level)
	return PathResult{PathString: path.Data, CacheHit: false, RenderLevel: level}, nil
}

func (e *Engine) generate(ctx context.Context, conn *diagram.Connection, src, dst router.Endpoint, srcNode, dstNode *diagram.NodeBox, dstPort *diagram.Port, sibling culling.SiblingPosition) *router.Path {
	opts := e.cfg.routerOptions()
	opts.Spread = (float64(sibling.Index) - float64(sibling.Total-1)/2) * e.cfg.SiblingSpread

	srcBox := srcNode.Box()
	dstBox := dstNode.Box()

	// same-side short hop: route around, re-entering on the side we left
	if router.NeedsUShape(src, dstBox, opts) {
		samePos, err := diagram.ResolvePortPositionOnSide(dstNode, dstPort, src.Side)
		if err == nil {
			return router.GenerateUShape(src, router.Endpoint{Pos: samePos, Side: src.Side}, srcBox, dstBox, opts)
		}
		log.Debug(ctx, "same-side re-entry unresolvable, falling through",
			slog.F("connection", conn.ID), slog.Error(err))
	}

	// detour around indexed obstacles sitting on the straight span
	e.rebuildIndexIfDirty()
	if detour := spatial.AvoidingWaypoints(src.Pos, dst.Pos, e.index, opts.SafeClear, srcNode.ID, dstNode.ID); detour != nil {
		return router.GeneratePolyline(detour, dst.Side, opts)
	}

	if conn.Mode == diagram.ModeArchitecture {
		return router.GenerateOrthogonal(src, dst, opts)
	}
	return router.GenerateBezier(src, dst, opts)
}

// ComputePaths routes a batch. Per-connection failures are logged and
// skipped so one broken reference never blanks the rest of the frame.
func (e *Engine) ComputePaths(ctx context.Context, conns []*diagram.Connection) map[string]PathResult {
	out := make(map[string]PathResult, len(conns))
	for _, conn := range conns {
		res, err := e.ComputePath(ctx, conn)
		if err != nil {
			log.Warn(ctx, "skipping unroutable connection",
				slog.F("connection", conn.ID), slog.Error(err))
			continue
		}
		out[conn.ID] = res
	}
	return out
}

// VisibleConnections filters to the connections worth routing for the given
// viewport. Connections with unresolvable endpoints are kept: a broken
// connection renders best-effort rather than vanishing.
func (e *Engine) VisibleConnections(ctx context.Context, conns []*diagram.Connection, vp diagram.ViewportBounds) []string {
	e.SetViewport(vp)
	opts := e.cfg.cullingOptions()

	// large graphs pre-pass through the spatial index instead of testing
	// every node box individually
	var nearViewport map[string]struct{}
	if e.snapshot.NodeCount() > e.cfg.LargeGraphThreshold {
		e.rebuildIndexIfDirty()
		expanded := culling.ExpandedViewport(vp, opts.CullingMargin)
		hits := e.index.QueryRect(expanded)
		nearViewport = make(map[string]struct{}, len(hits))
		for _, o := range hits {
			nearViewport[o.ID] = struct{}{}
		}
	}

	visible := make([]string, 0, len(conns))
	for _, conn := range conns {
		srcNode, err := e.node(conn.SourceNodeID)
		if err != nil {
			log.Warn(ctx, "connection endpoint missing, keeping visible",
				slog.F("connection", conn.ID), slog.Error(err))
			visible = append(visible, conn.ID)
			continue
		}
		dstNode, err := e.node(conn.TargetNodeID)
		if err != nil {
			log.Warn(ctx, "connection endpoint missing, keeping visible",
				slog.F("connection", conn.ID), slog.Error(err))
			visible = append(visible, conn.ID)
			continue
		}

		if nearViewport != nil {
			_, srcNear := nearViewport[srcNode.ID]
			_, dstNear := nearViewport[dstNode.ID]
			if srcNear || dstNear {
				visible = append(visible, conn.ID)
				continue
			}
			// both endpoints out of the indexed band; a pass-through edge
			// can still cross the viewport
		}

		if culling.ShouldRenderConnection(srcNode.Box(), dstNode.Box(), vp, opts) {
			visible = append(visible, conn.ID)
		}
	}
	e.visibleCount = len(visible)
	return visible
}

// InvalidateNode drops every cached path touching the node and marks the
// spatial index for rebuild. Called on drag completion, node resize, or
// port-count change.
func (e *Engine) InvalidateNode(nodeID string) {
	e.cache.InvalidateNode(nodeID)
	e.indexDirty = true
}

// BeginDrag opens the override window at the node's current position, so
// paths stay pinned to override geometry even before the first move event.
func (e *Engine) BeginDrag(nodeID string) {
	if n, err := e.snapshot.Node(nodeID); err == nil {
		e.overrides.Set(nodeID, n.X, n.Y)
	}
}

// DragTo tracks a drag-time position in the override map. The cache is left
// alone: the moved geometry changes the cache key, so stale entries are
// simply unreachable until EndDrag invalidates them.
func (e *Engine) DragTo(nodeID string, x, y float64) {
	e.overrides.Set(nodeID, x, y)
	e.indexDirty = true
}

// EndDrag closes the override window and invalidates the node's entries.
func (e *Engine) EndDrag(nodeID string) {
	e.overrides.Clear(nodeID)
	e.InvalidateNode(nodeID)
}

// EnqueueRecompute schedules the connection's path computation on the next
// frame. Repeat calls for the same connection coalesce.
func (e *Engine) EnqueueRecompute(ctx context.Context, conn *diagram.Connection) {
	e.queue.Enqueue(conn.ID, func() {
		if _, err := e.ComputePath(ctx, conn); err != nil {
			log.Warn(ctx, "scheduled recompute failed",
				slog.F("connection", conn.ID), slog.Error(err))
		}
	})
}

// Bundles groups the connections by endpoint pair when the count crosses the
// bundling threshold; nil below it.
func (e *Engine) Bundles(conns []*diagram.Connection) []culling.Bundle {
	return culling.BundleGroups(conns, e.cfg.cullingOptions())
}

func (e *Engine) Metrics() Metrics {
	stats := e.cache.Stats()
	return Metrics{
		VisibleCount:          e.visibleCount,
		CacheSize:             stats.Len,
		CacheHitRate:          stats.HitRate,
		LastComputeDurationMs: e.lastComputeMs,
	}
}

// Stop drops scheduled work. The engine remains usable for direct calls.
func (e *Engine) Stop() {
	e.queue.Stop()
}

// cacheKey encodes every input that affects path shape: routing mode, both
// node ids and geometries, port ids and sibling counts, and this
// connection's position among its group siblings. Node ids are framed so
// InvalidateNode can match them without parsing the whole key.
func cacheKey(conn *diagram.Connection, srcNode, dstNode *diagram.NodeBox, srcPort, dstPort *diagram.Port, sibling culling.SiblingPosition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "m:%s", conn.Mode)
	fmt.Fprintf(&b, "%s%s", pathcache.NodeToken(srcNode.ID), nodeGeom(srcNode))
	fmt.Fprintf(&b, "p:%s/%d/%d", srcPort.ID, srcPort.Index, srcPort.TotalSiblings)
	fmt.Fprintf(&b, "%s%s", pathcache.NodeToken(dstNode.ID), nodeGeom(dstNode))
	fmt.Fprintf(&b, "p:%s/%d/%d", dstPort.ID, dstPort.Index, dstPort.TotalSiblings)
	fmt.Fprintf(&b, "|i:%d/%d", sibling.Index, sibling.Total)
	return b.String()
}

func nodeGeom(n *diagram.NodeBox) string {
	return fmt.Sprintf("%s:%s:%v,%v,%v,%v", n.Shape, n.Variant, n.X, n.Y, n.Width, n.Height)
}
