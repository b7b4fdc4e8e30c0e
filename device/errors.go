// SPDX-License-Identifier: EPL-2.0

package device

import "errors"

var (
	ErrHandleStopped = errors.New("device: handle is stopped")
	ErrInvalidSound  = errors.New("device: sound has an invalid layout")
)
