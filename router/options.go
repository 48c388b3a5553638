// Package router computes connection path geometry: curved, orthogonal and
// U-shape obstacle-clearing routes between resolved port endpoints.
package router

const (
	DefaultLeadLength        = 50.0
	DefaultSafeClear         = 16.0
	DefaultArrowOffset       = 7.0
	DefaultArrowTrimDistance = 5.5
	DefaultSmoothingFactor   = 2.5
	DefaultControlOffsetMin  = 60.0
	DefaultCornerRadius      = 18.0
)

type Options struct {
	// LeadLength is the fixed straight segment emitted perpendicular to a
	// port before any routing bend.
	LeadLength float64
	// SafeClear is the minimum outward margin a U-shape route keeps beyond a
	// node's outer edge.
	SafeClear float64
	// ArrowOffset pulls the curved generator's target back along the
	// source→target direction to leave room for an arrowhead marker.
	ArrowOffset float64
	// ArrowTrimDistance pulls every other generator's terminal point back
	// along the final approach direction.
	ArrowTrimDistance float64
	SmoothingFactor   float64
	ControlOffsetMin  float64
	CornerRadius      float64
	// Spread fans a sibling connection's control points perpendicular to the
	// flow axis, so parallel connections between the same endpoints stay
	// visually distinct. Signed; zero for the centered sibling.
	Spread float64
}

func DefaultOptions() Options {
	return Options{
		LeadLength:        DefaultLeadLength,
		SafeClear:         DefaultSafeClear,
		ArrowOffset:       DefaultArrowOffset,
		ArrowTrimDistance: DefaultArrowTrimDistance,
		SmoothingFactor:   DefaultSmoothingFactor,
		ControlOffsetMin:  DefaultControlOffsetMin,
		CornerRadius:      DefaultCornerRadius,
	}
}

func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.LeadLength <= 0 {
		o.LeadLength = d.LeadLength
	}
	if o.SafeClear <= 0 {
		o.SafeClear = d.SafeClear
	}
	if o.ArrowOffset <= 0 {
		o.ArrowOffset = d.ArrowOffset
	}
	if o.ArrowTrimDistance <= 0 {
		o.ArrowTrimDistance = d.ArrowTrimDistance
	}
	if o.SmoothingFactor <= 0 {
		o.SmoothingFactor = d.SmoothingFactor
	}
	if o.ControlOffsetMin <= 0 {
		o.ControlOffsetMin = d.ControlOffsetMin
	}
	if o.CornerRadius <= 0 {
		o.CornerRadius = d.CornerRadius
	}
	return o
}
