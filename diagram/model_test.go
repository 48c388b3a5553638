package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupKey(t *testing.T) {
	ab := &Connection{ID: "1", SourceNodeID: "a", SourcePortID: "out", TargetNodeID: "b", TargetPortID: "in", Mode: ModeWorkflow}
	ba := &Connection{ID: "2", SourceNodeID: "b", SourcePortID: "in", TargetNodeID: "a", TargetPortID: "out", Mode: ModeWorkflow}

	// workflow keys are directional
	assert.NotEqual(t, ab.GroupKey(), ba.GroupKey())

	// architecture keys are unordered
	ab.Mode = ModeArchitecture
	ba.Mode = ModeArchitecture
	assert.Equal(t, ab.GroupKey(), ba.GroupKey())
}

func TestSnapshotLookup(t *testing.T) {
	s := NewSnapshot(
		[]*NodeBox{{ID: "a", Width: 10, Height: 10}},
		[]*Port{{ID: "p", OwnerNodeID: "a", Kind: PortOutput}},
	)

	n, err := s.Node("a")
	require.NoError(t, err)
	assert.Equal(t, "a", n.ID)

	_, err = s.Node("missing")
	assert.ErrorIs(t, err, ErrUnknownReference)

	_, err = s.Port("missing")
	assert.ErrorIs(t, err, ErrUnknownReference)
}

func TestOverrides(t *testing.T) {
	o := NewOverrides()
	node := &NodeBox{ID: "a", X: 1, Y: 2, Width: 10, Height: 10}

	assert.Same(t, node, o.Apply(node))

	o.Set("a", 100, 200)
	moved := o.Apply(node)
	assert.Equal(t, 100., moved.X)
	assert.Equal(t, 200., moved.Y)
	// snapshot node untouched
	assert.Equal(t, 1., node.X)

	o.Clear("a")
	assert.False(t, o.Active())
	assert.Same(t, node, o.Apply(node))
}
