// SPDX-License-Identifier: EPL-2.0

package device

import "fmt"

// DistanceModel selects how volume falls off with distance from the listener.
type DistanceModel int

const (
	DistanceInvalid DistanceModel = iota
	DistanceInverse
	DistanceInverseClamped
	DistanceLinear
	DistanceLinearClamped
	DistanceExponent
	DistanceExponentClamped
)

var distanceNames = [...]string{
	DistanceInvalid:         "invalid",
	DistanceInverse:         "inverse",
	DistanceInverseClamped:  "inverse_clamped",
	DistanceLinear:          "linear",
	DistanceLinearClamped:   "linear_clamped",
	DistanceExponent:        "exponent",
	DistanceExponentClamped: "exponent_clamped",
}

func (m DistanceModel) String() string {
	if m >= 0 && int(m) < len(distanceNames) {
		return distanceNames[m]
	}
	return fmt.Sprintf("DistanceModel(%d)", int(m))
}

// ParseDistanceModel is the inverse of DistanceModel.String.
func ParseDistanceModel(s string) (DistanceModel, error) {
	for i, name := range distanceNames {
		if name == s {
			return DistanceModel(i), nil
		}
	}

	return DistanceInvalid, fmt.Errorf("device: unknown distance model %q", s)
}
