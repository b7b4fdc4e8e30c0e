// SPDX-License-Identifier: EPL-2.0

package utils

// CubicInterpolate evaluates a Catmull-Rom spline segment between y1 and y2.
// x is the fractional position between y1 and y2 (0 <= x <= 1) and
// y0, y3 are the neighbours used for the centered-difference tangents.
//
// This is the cubic Hermite form with m1 = (y2-y0)/2 and m2 = (y3-y1)/2,
// so callers that have to duplicate an edge point can pass it twice.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return ((a0*x+a1)*x+a2)*x + a3
}

// LinearInterpolate blends y1 and y2 at fractional position x.
func LinearInterpolate(y1, y2, x float32) float32 {
	return y1 + (y2-y1)*x
}
