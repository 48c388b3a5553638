// Command edgeroute routes the connections of a diagram snapshot and prints
// the resulting SVG path data as JSON. It reads a snapshot document (nodes,
// ports, connections, optional viewport) from a file argument or stdin.
//
//	edgeroute --viewport 0,0,1280,800 --zoom 1 snapshot.json
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"cdr.dev/slog"
	"github.com/spf13/pflag"

	"github.com/flowcraft/edgeroute/diagram"
	"github.com/flowcraft/edgeroute/engine"
	"github.com/flowcraft/edgeroute/lib/log"
	"github.com/flowcraft/edgeroute/scheduler"
)

type document struct {
	Nodes       []*diagram.NodeBox      `json:"nodes"`
	Ports       []*diagram.Port         `json:"ports"`
	Connections []*diagram.Connection   `json:"connections"`
	Viewport    *diagram.ViewportBounds `json:"viewport,omitempty"`
}

type routedConnection struct {
	ID          string `json:"id"`
	Path        string `json:"path"`
	RenderLevel string `json:"renderLevel"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "edgeroute: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	viewportFlag := pflag.String("viewport", "", "viewport bounds as minX,minY,maxX,maxY; overrides the document's viewport")
	zoomFlag := pflag.Float64("zoom", 0, "viewport zoom factor; overrides the document's scale")
	allFlag := pflag.Bool("all", false, "route every connection, skipping viewport culling")
	modeFlag := pflag.String("mode-default", string(diagram.ModeWorkflow), "routing mode for connections that don't set one (workflow or architecture)")
	debugFlag := pflag.Bool("debug", false, "print debug logs")
	pflag.Parse()

	ctx := log.Stderr(context.Background())
	if *debugFlag {
		ctx = log.Leveled(ctx, slog.LevelDebug)
	}

	doc, err := readDocument(pflag.Args())
	if err != nil {
		return err
	}

	vp, hasViewport, err := resolveViewport(doc, *viewportFlag, *zoomFlag)
	if err != nil {
		return err
	}

	defaultMode := diagram.Mode(*modeFlag)
	if defaultMode != diagram.ModeWorkflow && defaultMode != diagram.ModeArchitecture {
		return fmt.Errorf("--mode-default wants workflow or architecture, got %q", *modeFlag)
	}
	for _, c := range doc.Connections {
		if c.Mode == "" {
			c.Mode = defaultMode
		}
	}

	e := engine.New(engine.Config{}, &scheduler.ManualFrame{})
	defer e.Stop()
	e.SetNodes(doc.Nodes, doc.Ports)
	e.SetConnections(doc.Connections)

	conns := doc.Connections
	if hasViewport && !*allFlag {
		ids := e.VisibleConnections(ctx, conns, vp)
		keep := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			keep[id] = struct{}{}
		}
		culled := conns[:0:0]
		for _, c := range conns {
			if _, ok := keep[c.ID]; ok {
				culled = append(culled, c)
			}
		}
		log.Debug(ctx, "culled connections",
			slog.F("total", len(conns)), slog.F("visible", len(culled)))
		conns = culled
	} else if hasViewport {
		e.SetViewport(vp)
	}

	results := e.ComputePaths(ctx, conns)

	out := make([]routedConnection, 0, len(results))
	for id, res := range results {
		out = append(out, routedConnection{
			ID:          id,
			Path:        res.PathString,
			RenderLevel: string(res.RenderLevel),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}

	m := e.Metrics()
	log.Info(ctx, "routed",
		slog.F("connections", len(out)),
		slog.F("cacheSize", m.CacheSize),
		slog.F("lastComputeMs", m.LastComputeDurationMs),
	)
	return nil
}

func readDocument(args []string) (*document, error) {
	var r io.Reader = os.Stdin
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding snapshot document: %w", err)
	}
	return &doc, nil
}

func resolveViewport(doc *document, flag string, zoom float64) (diagram.ViewportBounds, bool, error) {
	var vp diagram.ViewportBounds
	has := false
	if doc.Viewport != nil {
		vp = *doc.Viewport
		has = true
	}
	if flag != "" {
		parts := strings.Split(flag, ",")
		if len(parts) != 4 {
			return vp, false, fmt.Errorf("--viewport wants minX,minY,maxX,maxY, got %q", flag)
		}
		vals := make([]float64, 4)
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return vp, false, fmt.Errorf("--viewport component %q: %w", p, err)
			}
			vals[i] = v
		}
		vp.MinX, vp.MinY, vp.MaxX, vp.MaxY = vals[0], vals[1], vals[2], vals[3]
		has = true
	}
	if zoom > 0 {
		vp.Scale = zoom
	}
	if vp.Scale <= 0 {
		vp.Scale = 1
	}
	return vp, has, nil
}
