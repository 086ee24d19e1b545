// SPDX-License-Identifier: EPL-2.0

package voxmix

import "errors"

// ErrShutdown indicates a call on an engine after Shutdown
var ErrShutdown = errors.New("engine shut down")
