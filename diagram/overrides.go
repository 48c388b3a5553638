package diagram

import "github.com/flowcraft/edgeroute/lib/geo"

// Overrides tracks drag-time node positions separately from the snapshot so
// a pointer-move tick never invalidates cached paths. The engine consults
// Overrides before the snapshot while a drag is active and clears the entry
// at drag end, at which point the cache is invalidated once.
type Overrides struct {
	positions map[string]*geo.Point
}

func NewOverrides() *Overrides {
	return &Overrides{positions: make(map[string]*geo.Point)}
}

func (o *Overrides) Set(nodeID string, x, y float64) {
	o.positions[nodeID] = geo.NewPoint(x, y)
}

func (o *Overrides) Get(nodeID string) (*geo.Point, bool) {
	p, ok := o.positions[nodeID]
	return p, ok
}

func (o *Overrides) Clear(nodeID string) {
	delete(o.positions, nodeID)
}

func (o *Overrides) Active() bool {
	return len(o.positions) > 0
}

// Apply returns the node with its position replaced by the override, or the
// node unchanged when no override exists.
func (o *Overrides) Apply(node *NodeBox) *NodeBox {
	p, ok := o.positions[node.ID]
	if !ok {
		return node
	}
	moved := *node
	moved.X = p.X
	moved.Y = p.Y
	return &moved
}
