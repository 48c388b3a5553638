// Package svg builds SVG path data strings out of move/line/curve commands.
package svg

import (
	"fmt"
	"math"
	"strings"

	"github.com/flowcraft/edgeroute/lib/geo"
)

// PathContext accumulates path commands and the points they pass through.
// Coordinates are chopped to 4 decimals so the same geometry serializes
// byte-identically across machines.
type PathContext struct {
	Commands []string
	Points   geo.Route
	Start    *geo.Point
	Current  *geo.Point
}

func chopPrecision(f float64) float64 {
	return math.Round(f*10000) / 10000
}

func NewPathContext() *PathContext {
	return &PathContext{}
}

func (c *PathContext) chop(p *geo.Point) *geo.Point {
	return geo.NewPoint(chopPrecision(p.X), chopPrecision(p.Y))
}

func (c *PathContext) StartAt(p *geo.Point) {
	p = c.chop(p)
	c.Start = p
	c.Commands = append(c.Commands, fmt.Sprintf("M %v %v", p.X, p.Y))
	c.Points = append(c.Points, p.Copy())
	c.Current = p.Copy()
}

func (c *PathContext) L(p *geo.Point) {
	p = c.chop(p)
	c.Commands = append(c.Commands, fmt.Sprintf("L %v %v", p.X, p.Y))
	c.Points = append(c.Points, p.Copy())
	c.Current = p.Copy()
}

func (c *PathContext) C(cp1, cp2, end *geo.Point) {
	cp1 = c.chop(cp1)
	cp2 = c.chop(cp2)
	end = c.chop(end)
	c.Commands = append(c.Commands, fmt.Sprintf(
		"C %v %v %v %v %v %v",
		cp1.X, cp1.Y,
		cp2.X, cp2.Y,
		end.X, end.Y,
	))
	c.Points = append(c.Points, cp1.Copy(), cp2.Copy(), end.Copy())
	c.Current = end.Copy()
}

func (c *PathContext) PathData() string {
	return strings.Join(c.Commands, " ")
}
