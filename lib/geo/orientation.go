package geo

// Side is the side of a node box a port or route segment faces.
type Side int

const (
	Left Side = iota
	Right
	Top
	Bottom

	NONE
)

func (s Side) ToString() string {
	switch s {
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Top:
		return "Top"
	case Bottom:
		return "Bottom"
	default:
		return ""
	}
}

func (s Side) GetOpposite() Side {
	switch s {
	case Left:
		return Right
	case Right:
		return Left
	case Top:
		return Bottom
	case Bottom:
		return Top
	default:
		return s
	}
}

func (s Side) IsHorizontal() bool {
	return s == Left || s == Right
}

func (s Side) IsVertical() bool {
	return s == Top || s == Bottom
}

// Outward is the unit vector pointing away from a box through the given side.
func (s Side) Outward() Vector {
	switch s {
	case Left:
		return NewVector(-1, 0)
	case Right:
		return NewVector(1, 0)
	case Top:
		return NewVector(0, -1)
	default:
		return NewVector(0, 1)
	}
}
