package router

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcraft/edgeroute/lib/geo"
)

func TestGenerateOrthogonalLeads(t *testing.T) {
	src := Endpoint{Pos: geo.NewPoint(100, 50), Side: geo.Right}
	dst := Endpoint{Pos: geo.NewPoint(400, 250), Side: geo.Left}

	p := GenerateOrthogonal(src, dst, DefaultOptions())

	require.True(t, len(p.Points) >= 4)
	assert.True(t, p.Points[0].Equals(geo.NewPoint(100, 50)))
	// fixed lead perpendicular to the source side, stopping a corner radius
	// short of the first bend at x=150
	assert.True(t, strings.HasPrefix(p.Data, "M 100 50 L 132 50"), p.Data)
	// terminal pulled back from the port along its outward normal
	last := p.Points[len(p.Points)-1]
	assert.True(t, last.Equals(geo.NewPoint(394.5, 250)), last.ToString())
}

func TestGenerateOrthogonalAlignedPortsStaysStraight(t *testing.T) {
	src := Endpoint{Pos: geo.NewPoint(0, 100), Side: geo.Right}
	dst := Endpoint{Pos: geo.NewPoint(500, 100), Side: geo.Left}

	p := GenerateOrthogonal(src, dst, DefaultOptions())

	// same y on both ports: no bends, no curves
	assert.NotContains(t, p.Data, "C")
	for _, pt := range p.Points {
		assert.Equal(t, 100., pt.Y)
	}
}

func TestGenerateOrthogonalRoundsCorners(t *testing.T) {
	src := Endpoint{Pos: geo.NewPoint(0, 0), Side: geo.Right}
	dst := Endpoint{Pos: geo.NewPoint(300, 400), Side: geo.Top}

	p := GenerateOrthogonal(src, dst, DefaultOptions())

	assert.Contains(t, p.Data, "C")
	assert.Greater(t, p.Complexity(), 4.)
}

func TestGenerateOrthogonalDegenerateFallsBack(t *testing.T) {
	src := Endpoint{Pos: geo.NewPoint(5, 5), Side: geo.Right}
	dst := Endpoint{Pos: geo.NewPoint(5, 5), Side: geo.Left}

	p := GenerateOrthogonal(src, dst, DefaultOptions())
	assert.Equal(t, "M 5 5 L 5 5", p.Data)
}

func TestGeneratePolyline(t *testing.T) {
	points := geo.Route{
		geo.NewPoint(0, 0),
		geo.NewPoint(50, 80),
		geo.NewPoint(100, 0),
	}
	p := GeneratePolyline(points, geo.Left, DefaultOptions())

	assert.True(t, p.Points[0].Equals(geo.NewPoint(0, 0)))
	assert.True(t, p.Points[1].Equals(geo.NewPoint(50, 80)))
	// trimmed along the left port's outward normal
	assert.True(t, p.Points[2].Equals(geo.NewPoint(94.5, 0)))
}
