// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package list

import "errors"

var (
	// ErrIndexOutOfRange is returned by positional accessors and mutators
	// when the index is negative or not less than the list size (not more
	// than the size, for insertions).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidArgument is returned by constructors receiving malformed
	// parameters, such as a negative size.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTransientClosed is returned by operations on a transient after its
	// Persistent call.
	ErrTransientClosed = errors.New("transient used after persistent call")
)
