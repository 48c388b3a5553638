package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcraft/edgeroute/lib/geo"
)

func TestNeedsUShape(t *testing.T) {
	opts := DefaultOptions()

	// gap of 10 < lead length 50
	src := Endpoint{Pos: geo.NewPoint(100, 50), Side: geo.Right}
	near := geo.NewBox(geo.NewPoint(110, 0), 100, 100)
	far := geo.NewBox(geo.NewPoint(400, 0), 100, 100)

	assert.True(t, NeedsUShape(src, near, opts))
	assert.False(t, NeedsUShape(src, far, opts))

	// bottom variant: insufficient vertical clearance
	srcBottom := Endpoint{Pos: geo.NewPoint(50, 100), Side: geo.Bottom}
	below := geo.NewBox(geo.NewPoint(0, 120), 100, 100)
	assert.True(t, NeedsUShape(srcBottom, below, opts))
}

func TestGenerateUShapeSameSidePolicy(t *testing.T) {
	// Source port on the RIGHT of A (x: 0..100); B at x: 110..210, a 10 unit
	// gap, under the 50 unit lead length.
	srcBox := geo.NewBox(geo.NewPoint(0, 0), 100, 100)
	dstBox := geo.NewBox(geo.NewPoint(110, 0), 100, 100)
	src := Endpoint{Pos: geo.NewPoint(100, 50), Side: geo.Right}
	// re-entry resolved on the same (right) side of B
	dst := Endpoint{Pos: geo.NewPoint(210, 50), Side: geo.Right}

	opts := DefaultOptions()
	require.True(t, NeedsUShape(src, dstBox, opts))

	p := GenerateUShape(src, dst, srcBox, dstBox, opts)

	// the route swings out past both boxes' outer edge plus the clearance
	_, br := p.Points.GetBoundingBox()
	assert.GreaterOrEqual(t, br.X, 210+opts.SafeClear)

	// and terminates at B's right side, never its left
	last := p.Points[len(p.Points)-1]
	assert.GreaterOrEqual(t, last.X, dstBox.Right())
	assert.InDelta(t, dst.Pos.Y, last.Y, 1e-9)
}

func TestGenerateUShapeBottomVariant(t *testing.T) {
	srcBox := geo.NewBox(geo.NewPoint(0, 0), 100, 100)
	dstBox := geo.NewBox(geo.NewPoint(200, 20), 100, 100)
	src := Endpoint{Pos: geo.NewPoint(50, 100), Side: geo.Bottom}
	dst := Endpoint{Pos: geo.NewPoint(250, 120), Side: geo.Bottom}

	p := GenerateUShape(src, dst, srcBox, dstBox, DefaultOptions())

	_, br := p.Points.GetBoundingBox()
	assert.GreaterOrEqual(t, br.Y, 120+DefaultSafeClear)

	last := p.Points[len(p.Points)-1]
	assert.GreaterOrEqual(t, last.Y, dstBox.Bottom())
}

func TestGenerateUShapeDegenerate(t *testing.T) {
	src := Endpoint{Pos: geo.NewPoint(1, 1), Side: geo.Right}
	dst := Endpoint{Pos: geo.NewPoint(1, 1), Side: geo.Right}

	p := GenerateUShape(src, dst, nil, nil, DefaultOptions())
	assert.Equal(t, "M 1 1 L 1 1", p.Data)
}
