/*
 * Copyright (c) 2020-present unTill Pro, Ltd.
 */

package pool

import (
	"bytes"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

var (
	m               sync.Mutex = sync.Mutex{}
	objectsCounters []func() uint64
	isDebug         bool
	objAmounts      map[string]int = map[string]int{}
)

func (st stackTrace) string() string {
	buf := bytes.NewBufferString("")
	for _, sf := range st {
		buf.WriteString(fmt.Sprintf("%s\n\t%s:%d\n", sf.fn, sf.file, sf.line))
	}
	return buf.String()
}

func (p *implPool[T]) Get() IGuard[T] {
	return p.borrow()
}

func (p *implPool[T]) GetOwned(owner IReleaser) IGuard[T] {
	owner.mustBeActive()
	g := p.borrow()
	g.isOwned = true
	g.setOwnedTail(owner.getOwnedTail())
	owner.setOwnedTail(g)
	return g
}

func (p *implPool[T]) Use(fn func(item T) error) error {
	g := p.borrow()
	defer g.Release()
	return fn(g.item)
}

func (p *implPool[T]) GetObjectsInUse() uint64 {
	return atomic.LoadUint64(&p.objectsInUse)
}

// must be called directly from Get(), GetOwned() or Use() to keep the borrow stack trace correct
func (p *implPool[T]) borrow() *implGuard[T] {
	g := &implGuard[T]{
		item:      p.get(),
		ownerPool: p,
	}
	atomic.AddUint64(&p.objectsInUse, 1)
	if isDebug {
		st := getStackTrace().string()
		g.borrowStackTrace = st
		m.Lock()
		objAmounts[st]++
		m.Unlock()
	}
	return g
}

func (p *implPool[T]) get() T {
	if !p.isStub {
		if item, ok := p.idle.pop(); ok {
			return item
		}
	}
	return p.instantiator()
}

func (g *implGuard[T]) Item() T {
	if g.isReleased {
		panic(ErrReleased)
	}
	return g.item
}

func (g *implGuard[T]) Release() {
	if g.isOwned {
		panic(ErrOwned)
	}
	g.releaseOwned()
}

func (g *implGuard[T]) IsOwned() bool {
	return g.isOwned
}

func (g *implGuard[T]) releaseOwned() {
	if g.isReleased {
		panic(ErrAlreadyReleased)
	}
	g.isReleased = true
	item := g.item
	var zero T
	g.item = zero

	if g.ownedTail != nil {
		tail := g.ownedTail
		g.ownedTail = nil
		tail.releaseOwned()
	}

	item.Reset()

	p := g.ownerPool
	atomic.AddUint64(&p.objectsInUse, ^uint64(0))
	if len(g.borrowStackTrace) > 0 {
		m.Lock()
		objAmounts[g.borrowStackTrace]--
		m.Unlock()
	}
	if !p.isStub {
		p.idle.push(item)
	}
}

func (g *implGuard[T]) mustBeActive() {
	if g.isReleased {
		panic(ErrReleased)
	}
}

func (g *implGuard[T]) setOwnedTail(tail IReleaser) {
	g.ownedTail = tail
}

func (g *implGuard[T]) getOwnedTail() IReleaser {
	return g.ownedTail
}

func (c *idleItems[T]) pop() (item T, ok bool) {
	c.borrowMut()
	defer c.unborrow()
	n := len(c.items)
	if n == 0 {
		return item, false
	}
	item = c.items[n-1]
	var zero T
	c.items[n-1] = zero
	c.items = c.items[:n-1]
	return item, true
}

func (c *idleItems[T]) push(item T) {
	c.borrowMut()
	defer c.unborrow()
	c.items = append(c.items, item)
}

func (c *idleItems[T]) len() int {
	return len(c.items)
}

// borrowMut panics if another mutable access is in progress
// the pool is single-owner, so overlapping access means the pool is used from several goroutines
func (c *idleItems[T]) borrowMut() {
	if !c.borrowed.CompareAndSwap(false, true) {
		panic(ErrIdleItemsBorrowed)
	}
}

func (c *idleItems[T]) unborrow() {
	c.borrowed.Store(false)
}

// NewPoolStub creates pool which does not act as a pool. I.e. just creates a new instance on each Get()
// Release() does nothing more but Reset() call
// useful for investigations
func NewPoolStub[T IPoolItem](instantiator func() T) IPool[T] {
	res := newPool[T](instantiator)
	res.isStub = true
	return res
}

// NewPool creates an empty pool. instantiator is called on Get() when there are no idle items
// instantiator must return instance in the same state as Reset() leaves it
func NewPool[T IPoolItem](instantiator func() T) IPool[T] {
	return newPool[T](instantiator)
}

// NewPoolOf creates an empty pool of *T items, new items are zero values of T
// e.g. NewPoolOf[bytebufferpool.ByteBuffer]()
func NewPoolOf[T any, PT interface {
	*T
	IPoolItem
}]() IPool[PT] {
	return newPool[PT](func() PT { return PT(new(T)) })
}

func newPool[T IPoolItem](instantiator func() T) *implPool[T] {
	if instantiator == nil {
		panic(ErrNilInstantiator)
	}
	res := &implPool[T]{instantiator: instantiator}
	RegisterObjectsInUseCounter(func() uint64 { return res.GetObjectsInUse() })
	return res
}

func getStackTrace() stackTrace {
	pc := make([]uintptr, maxStackDepth)
	// skip runtime.Callers, getStackTrace, borrow and the pool method
	n := runtime.Callers(4, pc)
	frames := runtime.CallersFrames(pc[:n])
	st := stackTrace{}
	for {
		frame, more := frames.Next()
		st = append(st, stackFrame{
			fn:   frame.Function,
			file: frame.File,
			line: frame.Line,
		})
		if !more {
			break
		}
	}
	return st
}
