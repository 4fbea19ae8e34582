/*
 * Copyright (c) 2023-present unTill Pro, Ltd. and Contributors
 *
 * This source code is licensed under the MIT license found in the
 * LICENSE file in the root directory of this source tree.
 */

package pool

// IPoolItem is the contract every pooled type must satisfy
// Reset must bring the instance back to the state a freshly created instance has
// must be idempotent: Reset() on an already reset instance changes nothing
type IPoolItem interface {
	Reset()
}

// IPool s.e.
// use NewPool(), NewPoolOf() and NewPoolStub()
// not safe for concurrent use: a pool and all its guards belong to one goroutine at a time
type IPool[T IPoolItem] interface {
	// Get borrows an idle item or creates a new one if there are no idle items
	// the item is available through the returned guard until guard.Release()
	Get() IGuard[T]

	// borrows an item which can be released by the owner release only. guard.Release() causes panic.
	// use case: pooled root item owns a nested pooled item. Borrow nested by GetOwned to avoid nested release before root release
	GetOwned(owner IReleaser) IGuard[T]

	// Use borrows an item, calls fn with it and releases it on any fn exit: return, error or panic
	// fn's error is returned as is, panic is re-raised after release
	// the item must not be retained after fn returns
	Use(fn func(item T) error) error

	// GetObjectsInUse returns amount of items borrowed from this pool but not released
	GetObjectsInUse() uint64
}

// IReleaser provides ability to return the borrowed item to the pool
type IReleaser interface {
	// Release resets the item and returns it to the pool
	// panics if released already avoiding returning the same item to the pool twice
	// panics if the guard is owned, owned guards are released by their owner
	Release()
	IsOwned() bool

	// for internal use
	releaseOwned()
	mustBeActive()
	setOwnedTail(IReleaser)
	getOwnedTail() IReleaser
}

// IGuard exclusively holds one borrowed item
type IGuard[T IPoolItem] interface {
	IReleaser

	// Item returns the borrowed item
	// panics if the guard is released already
	Item() T
}
