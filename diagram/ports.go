package diagram

import (
	"fmt"

	"github.com/flowcraft/edgeroute/lib/geo"
	"github.com/flowcraft/edgeroute/lib/go2"
)

const (
	// Offsets never spread past 80% of the span, nor closer than 35 units to
	// either node corner.
	portSpreadRatio  = 0.8
	portCornerInset  = 70.0
	compactPortScale = 0.8
)

// SideForPort maps a port kind to the node side it sits on under the given
// routing mode. Workflow diagrams flow left to right, architecture diagrams
// top to bottom.
func SideForPort(kind PortKind, mode Mode) geo.Side {
	switch kind {
	case PortInput:
		if mode == ModeArchitecture {
			return geo.Top
		}
		return geo.Left
	case PortOutput:
		if mode == ModeArchitecture {
			return geo.Bottom
		}
		return geo.Right
	case PortBottom:
		return geo.Bottom
	case PortSide:
		return geo.Right
	default:
		return geo.NONE
	}
}

// usableSpan is the stretch of a node edge available for spreading sibling
// ports, whichever is smaller of 80% of the edge or the edge minus the
// corner insets. Never negative.
func usableSpan(edge float64) float64 {
	return go2.Max(0, go2.Min(portSpreadRatio*edge, edge-portCornerInset))
}

// portOffset is the signed distance from the edge's midpoint for the port at
// index among total same-side siblings.
func portOffset(index, total int, span float64) float64 {
	if total <= 1 || span == 0 {
		return 0
	}
	switch total {
	case 2:
		if index == 0 {
			return -span / 3
		}
		return span / 3
	case 3:
		switch index {
		case 0:
			return -span / 2
		case 1:
			return 0
		default:
			return span / 2
		}
	default:
		return -span/2 + span*float64(index)/float64(total-1)
	}
}

// ResolvePortPositionOnSide is ResolvePortPosition with the side forced,
// regardless of port kind. U-shape routes re-enter the target on the same
// side they left the source even when a nearer port exists elsewhere.
func ResolvePortPositionOnSide(node *NodeBox, port *Port, side geo.Side) (*geo.Point, error) {
	if node == nil {
		return nil, fmt.Errorf("node: %w", ErrUnknownReference)
	}
	if port == nil {
		return nil, fmt.Errorf("port: %w", ErrUnknownReference)
	}

	forced := *port
	switch side {
	case geo.Left:
		forced.Kind = PortInput
		return resolve(node, &forced, ModeWorkflow)
	case geo.Right:
		forced.Kind = PortOutput
		return resolve(node, &forced, ModeWorkflow)
	case geo.Top:
		forced.Kind = PortInput
		return resolve(node, &forced, ModeArchitecture)
	case geo.Bottom:
		forced.Kind = PortBottom
		return resolve(node, &forced, ModeWorkflow)
	default:
		return nil, fmt.Errorf("port %q side %q: %w", port.ID, side.ToString(), ErrUnknownReference)
	}
}

func resolve(node *NodeBox, port *Port, mode Mode) (*geo.Point, error) {
	p, _, err := ResolvePortPosition(node, port, mode)
	return p, err
}

// ResolvePortPosition computes the port's coordinate on the node boundary
// together with the side it faces. Deterministic for fixed inputs.
func ResolvePortPosition(node *NodeBox, port *Port, mode Mode) (*geo.Point, geo.Side, error) {
	if node == nil {
		return nil, geo.NONE, fmt.Errorf("node: %w", ErrUnknownReference)
	}
	if port == nil {
		return nil, geo.NONE, fmt.Errorf("port: %w", ErrUnknownReference)
	}

	side := SideForPort(port.Kind, mode)
	if side == geo.NONE {
		return nil, geo.NONE, fmt.Errorf("port %q kind %q: %w", port.ID, port.Kind, ErrUnknownReference)
	}

	total := port.TotalSiblings
	if total <= 0 {
		total = 1
	}
	index := port.Index
	if index < 0 {
		index = 0
	}
	if index >= total {
		index = total - 1
	}

	var span float64
	if side.IsVertical() {
		span = usableSpan(node.Width)
	} else {
		span = usableSpan(node.Height)
	}

	offset := portOffset(index, total, span)
	if node.Variant == VariantCompact {
		offset *= compactPortScale
	}

	switch side {
	case geo.Left:
		return geo.NewPoint(node.X, node.Y+node.Height/2+offset), side, nil
	case geo.Right:
		return geo.NewPoint(node.X+node.Width, node.Y+node.Height/2+offset), side, nil
	case geo.Top:
		return geo.NewPoint(node.X+node.Width/2+offset, node.Y), side, nil
	default: // geo.Bottom
		return geo.NewPoint(node.X+node.Width/2+offset, node.Y+node.Height), side, nil
	}
}
