package diagram

import (
	"errors"
	"fmt"
)

// ErrUnknownReference is returned when a connection names a node or port id
// absent from the snapshot. Fatal for that single connection only; batch
// callers skip and log.
var ErrUnknownReference = errors.New("unknown reference")

// Snapshot is an immutable view of the diagram's nodes and ports, indexed by
// id. Built once per host update; connections resolve against it.
type Snapshot struct {
	nodes map[string]*NodeBox
	ports map[string]*Port

	nodeList []*NodeBox
}

func NewSnapshot(nodes []*NodeBox, ports []*Port) *Snapshot {
	s := &Snapshot{
		nodes:    make(map[string]*NodeBox, len(nodes)),
		ports:    make(map[string]*Port, len(ports)),
		nodeList: nodes,
	}
	for _, n := range nodes {
		s.nodes[n.ID] = n
	}
	for _, p := range ports {
		s.ports[p.ID] = p
	}
	return s
}

func (s *Snapshot) Node(id string) (*NodeBox, error) {
	n, ok := s.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node %q: %w", id, ErrUnknownReference)
	}
	return n, nil
}

func (s *Snapshot) Port(id string) (*Port, error) {
	p, ok := s.ports[id]
	if !ok {
		return nil, fmt.Errorf("port %q: %w", id, ErrUnknownReference)
	}
	return p, nil
}

func (s *Snapshot) Nodes() []*NodeBox {
	return s.nodeList
}

func (s *Snapshot) NodeCount() int {
	return len(s.nodes)
}
