/*
 * Copyright (c) 2023-present unTill Pro, Ltd. and Contributors
 *
 * This source code is licensed under the MIT license found in the
 * LICENSE file in the root directory of this source tree.
 */

package pool

import "errors"

// all errors are programmer faults and are raised by panic
var (
	ErrAlreadyReleased   = errors.New("already released")
	ErrReleased          = errors.New("item accessed through released guard")
	ErrOwned             = errors.New("must be released by owner")
	ErrIdleItemsBorrowed = errors.New("idle items are borrowed already: concurrent pool usage")
	ErrNilInstantiator   = errors.New("instantiator must not be nil")
)

const maxStackDepth = 100
