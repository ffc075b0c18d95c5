package cell

import (
	"runtime"
	"strconv"
	"strings"
)

// Handle identifies a value stored in an [Arena]. The zero Handle is never
// alive. Handles are valid only with the arena that issued them.
type Handle[T any] struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle[T]) IsZero() bool {
	return h.gen == 0
}

type slot[T any] struct {
	value    T
	gen      uint32
	live     bool
	borrowed bool
	site     string
}

// Arena is a generational slot store for values of type T.
// The zero value is not usable; create arenas with [NewArena].
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	count int
}

// NewArena returns an empty arena.
func NewArena[T any]() *Arena[T] {
	return &Arena[T]{}
}

// Insert stores value and returns its handle. Slots freed by [Arena.Remove]
// are reused; their generation counter keeps old handles stale.
func (a *Arena[T]) Insert(value T) Handle[T] {
	a.count++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.value = value
		s.live = true
		return Handle[T]{index: idx, gen: s.gen}
	}
	// Generations start at 1 so the zero Handle never resolves.
	a.slots = append(a.slots, slot[T]{value: value, gen: 1, live: true})
	return Handle[T]{index: uint32(len(a.slots) - 1), gen: 1}
}

// Remove deletes the value behind h and returns it. Every outstanding handle
// to the slot becomes stale. Remove panics if h is already dead, or if the
// value is currently borrowed.
func (a *Arena[T]) Remove(h Handle[T]) T {
	s := a.resolve(h)
	if s.borrowed {
		panic("cell: cannot remove value borrowed at " + s.site)
	}
	var zero T
	v := s.value
	s.value = zero
	s.live = false
	s.gen++
	a.count--
	a.free = append(a.free, h.index)
	return v
}

// Alive reports whether h still refers to a stored value.
func (a *Arena[T]) Alive(h Handle[T]) bool {
	if int(h.index) >= len(a.slots) {
		return false
	}
	s := &a.slots[h.index]
	return s.live && s.gen == h.gen
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int {
	return a.count
}

// With lends the value behind h to fn. The slot is marked borrowed until fn
// returns; a nested With or TryWith on the same handle panics and names the
// call site that holds the borrow. With panics if h is dead.
//
// The pointer passed to fn must not be retained past the callback.
func (a *Arena[T]) With(h Handle[T], fn func(*T)) {
	s := a.resolve(h)
	a.borrow(s, fn)
}

// TryWith is With for handles that may have gone stale: it returns false
// instead of panicking when h is dead. A borrow conflict still panics, since
// that is a reentrancy bug rather than a lifetime race.
func (a *Arena[T]) TryWith(h Handle[T], fn func(*T)) bool {
	if !a.Alive(h) {
		return false
	}
	a.borrow(&a.slots[h.index], fn)
	return true
}

func (a *Arena[T]) borrow(s *slot[T], fn func(*T)) {
	if s.borrowed {
		panic("cell: value already borrowed at " + s.site)
	}
	s.borrowed = true
	s.site = callerSite()
	defer func() {
		s.borrowed = false
	}()
	fn(&s.value)
}

func (a *Arena[T]) resolve(h Handle[T]) *slot[T] {
	if int(h.index) >= len(a.slots) {
		panic("cell: use of handle from another arena")
	}
	s := &a.slots[h.index]
	if !s.live || s.gen != h.gen {
		panic("cell: use of dead handle")
	}
	return s
}

// callerSite returns the file:line of the code that called With or TryWith.
// Skip 3: callerSite, borrow, With/TryWith.
func callerSite() string {
	_, file, line, ok := runtime.Caller(3)
	if !ok {
		return "unknown"
	}
	if i := strings.LastIndexByte(file, '/'); i >= 0 {
		file = file[i+1:]
	}
	return file + ":" + strconv.Itoa(line)
}
