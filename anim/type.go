// SPDX-License-Identifier: EPL-2.0

package anim

import "fmt"

// Type identifies one of the animated parameters of a sequence or entry.
type Type int

const (
	Volume Type = iota
	Panning
	Pitch
	Location
	Orientation
)

func (t Type) String() string {
	switch t {
	case Volume:
		return "volume"
	case Panning:
		return "panning"
	case Pitch:
		return "pitch"
	case Location:
		return "location"
	case Orientation:
		return "orientation"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Components is the vector width of t: scalars for volume, panning and pitch,
// a 3D vector for location and a w,x,y,z quaternion for orientation.
func (t Type) Components() int {
	switch t {
	case Location:
		return 3
	case Orientation:
		return 4
	case Volume, Panning, Pitch:
		return 1
	default:
		return 0
	}
}

// ParseType is the inverse of Type.String.
func ParseType(s string) (Type, error) {
	for t := Volume; t <= Orientation; t++ {
		if t.String() == s {
			return t, nil
		}
	}

	return 0, fmt.Errorf("anim: unknown property type %q", s)
}
