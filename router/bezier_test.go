package router

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowcraft/edgeroute/lib/geo"
)

func TestGenerateBezierHorizontal(t *testing.T) {
	src := Endpoint{Pos: geo.NewPoint(0, 0), Side: geo.Right}
	dst := Endpoint{Pos: geo.NewPoint(300, 0), Side: geo.Left}

	p := GenerateBezier(src, dst, DefaultOptions())

	// controlOffset = max(300/2.5, 60) = 120; target pulled back by 7
	assert.Equal(t, "M 0 0 C 120 0 173 0 293 0", p.Data)
	assert.True(t, p.Points[0].Equals(geo.NewPoint(0, 0)))
	assert.True(t, p.Points[len(p.Points)-1].Equals(geo.NewPoint(293, 0)))
}

func TestGenerateBezierMinimumOffset(t *testing.T) {
	src := Endpoint{Pos: geo.NewPoint(0, 0), Side: geo.Right}
	dst := Endpoint{Pos: geo.NewPoint(100, 0), Side: geo.Left}

	p := GenerateBezier(src, dst, DefaultOptions())

	// 100/2.5 = 40 < controlOffsetMin
	assert.True(t, strings.HasPrefix(p.Data, "M 0 0 C 60 0"), p.Data)
}

func TestGenerateBezierRightToLeft(t *testing.T) {
	src := Endpoint{Pos: geo.NewPoint(300, 0), Side: geo.Right}
	dst := Endpoint{Pos: geo.NewPoint(0, 0), Side: geo.Left}

	p := GenerateBezier(src, dst, DefaultOptions())

	// sign-adjusted: the control offset points along the flow direction
	cp1 := p.Points[1]
	assert.Equal(t, 300-120., cp1.X)
}

func TestGenerateBezierVerticalFlow(t *testing.T) {
	src := Endpoint{Pos: geo.NewPoint(0, 300), Side: geo.Bottom}
	dst := Endpoint{Pos: geo.NewPoint(0, 0), Side: geo.Bottom}

	p := GenerateBezier(src, dst, DefaultOptions())

	// bottom-to-top flow carries the offset on the y axis
	cp1 := p.Points[1]
	assert.Equal(t, 0., cp1.X)
	assert.Equal(t, 300-120., cp1.Y)
}

func TestGenerateBezierDeterministic(t *testing.T) {
	src := Endpoint{Pos: geo.NewPoint(13.37, 42.42), Side: geo.Right}
	dst := Endpoint{Pos: geo.NewPoint(481.1, 99.9), Side: geo.Left}

	a := GenerateBezier(src, dst, DefaultOptions())
	b := GenerateBezier(src, dst, DefaultOptions())
	assert.Equal(t, a.Data, b.Data)
}

func TestGenerateBezierDegenerateFallsBack(t *testing.T) {
	src := Endpoint{Pos: geo.NewPoint(10, 10), Side: geo.Right}

	// zero-length primary vector
	p := GenerateBezier(src, Endpoint{Pos: geo.NewPoint(10, 10), Side: geo.Left}, DefaultOptions())
	assert.Equal(t, "M 10 10 L 10 10", p.Data)

	// non-finite coordinate
	p = GenerateBezier(src, Endpoint{Pos: geo.NewPoint(math.NaN(), 0), Side: geo.Left}, DefaultOptions())
	assert.Equal(t, "M 10 10 L 10 10", p.Data)
}
