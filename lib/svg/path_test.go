package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowcraft/edgeroute/lib/geo"
)

func TestPathData(t *testing.T) {
	c := NewPathContext()
	c.StartAt(geo.NewPoint(0, 0))
	c.C(geo.NewPoint(120, 0), geo.NewPoint(173, 0), geo.NewPoint(293, 0))

	assert.Equal(t, "M 0 0 C 120 0 173 0 293 0", c.PathData())
	assert.Len(t, c.Points, 4)
	assert.True(t, c.Current.Equals(geo.NewPoint(293, 0)))
}

func TestPathDataChopsPrecision(t *testing.T) {
	c := NewPathContext()
	c.StartAt(geo.NewPoint(0.123456789, 0))
	c.L(geo.NewPoint(10, 20.00001))

	assert.Equal(t, "M 0.1235 0 L 10 20", c.PathData())
}
