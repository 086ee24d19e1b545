// SPDX-License-Identifier: EPL-2.0

package asset

import "errors"

var (
	// ErrNotFound indicates the name exists neither on disk nor in the archive
	ErrNotFound = errors.New("asset not found")

	// ErrArchiveClosed indicates Extract was called after Close
	ErrArchiveClosed = errors.New("archive closed")
)
