// SPDX-License-Identifier: EPL-2.0

package scene

import "errors"

var (
	ErrNoSound          = errors.New("scene: entry sound needs either file or tone")
	ErrUnknownProperty  = errors.New("scene: property cannot be animated here")
	ErrNegativeKeyframe = errors.New("scene: keyframe frame must not be negative")
	ErrInvalidFPS       = errors.New("scene: fps must be positive")
)
