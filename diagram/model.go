// Package diagram holds the snapshot data model the routing engine reads:
// node boxes, ports, connections and the viewport. The engine never mutates
// a snapshot; the host supplies a fresh one whenever the document changes.
package diagram

import (
	"fmt"
	"sort"

	"github.com/flowcraft/edgeroute/lib/geo"
)

type Shape string

const (
	ShapeRectangle Shape = "rectangle"
	ShapeDiamond   Shape = "diamond"
	ShapeCircle    Shape = "circle"
)

type Variant string

const (
	VariantStandard Variant = "standard"
	VariantCompact  Variant = "compact"
)

type PortKind string

const (
	PortInput  PortKind = "input"
	PortOutput PortKind = "output"
	PortBottom PortKind = "bottom"
	PortSide   PortKind = "side"
)

type Mode string

const (
	ModeWorkflow     Mode = "workflow"
	ModeArchitecture Mode = "architecture"
)

type NodeBox struct {
	ID      string  `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Shape   Shape   `json:"shape,omitempty"`
	Variant Variant `json:"variant,omitempty"`
}

func (n *NodeBox) Box() *geo.Box {
	return geo.NewBox(geo.NewPoint(n.X, n.Y), n.Width, n.Height)
}

func (n *NodeBox) Center() *geo.Point {
	return n.Box().Center()
}

type Port struct {
	ID            string   `json:"id"`
	OwnerNodeID   string   `json:"ownerNodeId"`
	Kind          PortKind `json:"kind"`
	DataType      string   `json:"dataType,omitempty"`
	Index         int      `json:"index"`
	TotalSiblings int      `json:"totalSiblings"`
}

type Connection struct {
	ID           string `json:"id"`
	SourceNodeID string `json:"sourceNodeId"`
	SourcePortID string `json:"sourcePortId"`
	TargetNodeID string `json:"targetNodeId"`
	TargetPortID string `json:"targetPortId"`
	Mode         Mode   `json:"mode"`
}

// GroupKey identifies connections sharing the same endpoint pair. Workflow
// connections are directional so the ordered pair is used; architecture
// connections bundle regardless of direction, so endpoints are sorted.
func (c *Connection) GroupKey() string {
	src := fmt.Sprintf("%s.%s", c.SourceNodeID, c.SourcePortID)
	dst := fmt.Sprintf("%s.%s", c.TargetNodeID, c.TargetPortID)
	if c.Mode == ModeArchitecture {
		pair := []string{src, dst}
		sort.Strings(pair)
		return fmt.Sprintf("%s--%s", pair[0], pair[1])
	}
	return fmt.Sprintf("%s->%s", src, dst)
}

type ViewportBounds struct {
	MinX  float64 `json:"minX"`
	MinY  float64 `json:"minY"`
	MaxX  float64 `json:"maxX"`
	MaxY  float64 `json:"maxY"`
	Scale float64 `json:"scale"`
}

func (v ViewportBounds) Box() *geo.Box {
	return geo.NewBox(geo.NewPoint(v.MinX, v.MinY), v.MaxX-v.MinX, v.MaxY-v.MinY)
}
