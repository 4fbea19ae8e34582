/*
 * Copyright (c) 2021-present unTill Pro, Ltd.
 */

package pool

import "sync/atomic"

type implPool[T IPoolItem] struct {
	idle         idleItems[T]
	isStub       bool
	objectsInUse uint64
	instantiator func() T
}

type implGuard[T IPoolItem] struct {
	item             T
	isReleased       bool
	isOwned          bool
	ownerPool        *implPool[T]
	borrowStackTrace string
	ownedTail        IReleaser
}

// idleItems is the free list of already reset items
// exclusive access is checked in runtime, see borrowMut()
type idleItems[T any] struct {
	items    []T
	borrowed atomic.Bool
}

type stackFrame struct {
	fn   string
	file string
	line int
}

type stackTrace []stackFrame
