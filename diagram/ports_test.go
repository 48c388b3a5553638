package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcraft/edgeroute/lib/geo"
)

func TestResolvePortPositionSingle(t *testing.T) {
	node := &NodeBox{ID: "a", X: 0, Y: 0, Width: 100, Height: 50}

	pos, side, err := ResolvePortPosition(node, &Port{ID: "out", Kind: PortOutput, TotalSiblings: 1}, ModeWorkflow)
	require.NoError(t, err)
	assert.Equal(t, geo.Right, side)
	assert.True(t, pos.Equals(geo.NewPoint(100, 25)))

	pos, side, err = ResolvePortPosition(node, &Port{ID: "in", Kind: PortInput, TotalSiblings: 1}, ModeWorkflow)
	require.NoError(t, err)
	assert.Equal(t, geo.Left, side)
	assert.True(t, pos.Equals(geo.NewPoint(0, 25)))
}

func TestResolvePortPositionSiblingSpread(t *testing.T) {
	// usable span of the bottom edge: min(0.8*200, 200-70) = 130
	node := &NodeBox{ID: "a", X: 0, Y: 0, Width: 200, Height: 100}

	bottom := func(index, total int) *Port {
		return &Port{ID: "b", Kind: PortBottom, Index: index, TotalSiblings: total}
	}

	// two siblings sit at ±span/3
	p0, _, err := ResolvePortPosition(node, bottom(0, 2), ModeWorkflow)
	require.NoError(t, err)
	p1, _, err := ResolvePortPosition(node, bottom(1, 2), ModeWorkflow)
	require.NoError(t, err)
	assert.InDelta(t, 100-130./3, p0.X, 1e-9)
	assert.InDelta(t, 100+130./3, p1.X, 1e-9)
	assert.Equal(t, 100., p0.Y)

	// three siblings: -half, 0, +half
	p0, _, _ = ResolvePortPosition(node, bottom(0, 3), ModeWorkflow)
	p1, _, _ = ResolvePortPosition(node, bottom(1, 3), ModeWorkflow)
	p2, _, _ := ResolvePortPosition(node, bottom(2, 3), ModeWorkflow)
	assert.InDelta(t, 35, p0.X, 1e-9)
	assert.InDelta(t, 100, p1.X, 1e-9)
	assert.InDelta(t, 165, p2.X, 1e-9)

	// five siblings spread evenly across the span
	xs := make([]float64, 5)
	for i := range xs {
		p, _, err := ResolvePortPosition(node, bottom(i, 5), ModeWorkflow)
		require.NoError(t, err)
		xs[i] = p.X
	}
	assert.InDelta(t, 35, xs[0], 1e-9)
	assert.InDelta(t, 165, xs[4], 1e-9)
	for i := 1; i < len(xs); i++ {
		assert.InDelta(t, 130./4, xs[i]-xs[i-1], 1e-9)
	}
}

func TestResolvePortPositionCompactScale(t *testing.T) {
	standard := &NodeBox{ID: "a", X: 0, Y: 0, Width: 200, Height: 100}
	compact := &NodeBox{ID: "a", X: 0, Y: 0, Width: 200, Height: 100, Variant: VariantCompact}
	port := &Port{ID: "b", Kind: PortBottom, Index: 0, TotalSiblings: 2}

	ps, _, err := ResolvePortPosition(standard, port, ModeWorkflow)
	require.NoError(t, err)
	pc, _, err := ResolvePortPosition(compact, port, ModeWorkflow)
	require.NoError(t, err)

	assert.InDelta(t, (100-ps.X)*0.8, 100-pc.X, 1e-9)
}

func TestResolvePortPositionNarrowNode(t *testing.T) {
	// width-70 < 0, so all ports collapse to the edge midpoint
	node := &NodeBox{ID: "a", X: 0, Y: 0, Width: 60, Height: 60}

	p0, _, err := ResolvePortPosition(node, &Port{ID: "b", Kind: PortBottom, Index: 0, TotalSiblings: 3}, ModeWorkflow)
	require.NoError(t, err)
	p2, _, err := ResolvePortPosition(node, &Port{ID: "b", Kind: PortBottom, Index: 2, TotalSiblings: 3}, ModeWorkflow)
	require.NoError(t, err)
	assert.True(t, p0.Equals(p2))
	assert.True(t, p0.Equals(geo.NewPoint(30, 60)))
}

func TestResolvePortPositionArchitectureMode(t *testing.T) {
	node := &NodeBox{ID: "a", X: 0, Y: 0, Width: 100, Height: 50}

	_, side, err := ResolvePortPosition(node, &Port{ID: "in", Kind: PortInput, TotalSiblings: 1}, ModeArchitecture)
	require.NoError(t, err)
	assert.Equal(t, geo.Top, side)

	_, side, err = ResolvePortPosition(node, &Port{ID: "out", Kind: PortOutput, TotalSiblings: 1}, ModeArchitecture)
	require.NoError(t, err)
	assert.Equal(t, geo.Bottom, side)
}

func TestResolvePortPositionUnknown(t *testing.T) {
	node := &NodeBox{ID: "a", Width: 100, Height: 50}

	_, _, err := ResolvePortPosition(node, nil, ModeWorkflow)
	assert.ErrorIs(t, err, ErrUnknownReference)

	_, _, err = ResolvePortPosition(nil, &Port{ID: "p"}, ModeWorkflow)
	assert.ErrorIs(t, err, ErrUnknownReference)

	_, _, err = ResolvePortPosition(node, &Port{ID: "p", Kind: PortKind("bogus")}, ModeWorkflow)
	assert.ErrorIs(t, err, ErrUnknownReference)
}
