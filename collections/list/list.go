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

import (
	"fmt"
	"iter"
)

// List is an immutable sequence that adapts its internal representation to
// its size: tiny lists are flat copied arrays, mid-size lists are chunk
// sequences with cheap appends at both ends, and large lists are 32-way
// tries with O(log n) access and structural sharing. Representation changes
// are transparent; they happen as a one-time bulk copy when an operation
// moves the size across a threshold.
//
// Every mutating operation returns a new List value and leaves the receiver
// unchanged, so earlier values stay valid after later ones are derived from
// them. The zero value List[T]{} is a valid empty list with the default
// configuration.
//
// Lists are safe for concurrent reads without synchronization; shared nodes
// are never mutated after publication.
type List[T any] struct {
	cfg Config
	rep representation[T]
}

// Empty returns an empty list with the default configuration.
func Empty[T any]() List[T] {
	return List[T]{}
}

// EmptyWithConfig returns an empty list with the given configuration.
func EmptyWithConfig[T any](cfg Config) List[T] {
	return List[T]{cfg: cfg}
}

// From returns a list holding a copy of the given elements.
func From[T any](elems []T) List[T] {
	return FromWithConfig(Config{}, elems)
}

// FromWithConfig returns a list holding a copy of the given elements, using
// the given configuration.
func FromWithConfig[T any](cfg Config, elems []T) List[T] {
	if len(elems) == 0 {
		return List[T]{cfg: cfg}
	}
	kind := cfg.Thresholds.orDefault().initial(len(elems))
	return List[T]{cfg: cfg, rep: buildRepr(kind, elems)}
}

// Of returns a list of the given size with element i produced by generate(i).
// A negative size is rejected with ErrInvalidArgument.
func Of[T any](size int, generate func(int) T) (List[T], error) {
	return OfWithConfig(Config{}, size, generate)
}

// OfWithConfig returns a list of the given size with element i produced by
// generate(i), using the given configuration. A negative size is rejected
// with ErrInvalidArgument.
func OfWithConfig[T any](cfg Config, size int, generate func(int) T) (List[T], error) {
	if size < 0 {
		return List[T]{}, fmt.Errorf("%w: negative size %d", ErrInvalidArgument, size)
	}
	elems := make([]T, size)
	for i := range elems {
		elems[i] = generate(i)
	}
	return FromWithConfig(cfg, elems), nil
}

// norm resolves the nil representation of the zero value to an empty small
// representation.
func (l List[T]) norm() representation[T] {
	if l.rep == nil {
		return &small[T]{}
	}
	return l.rep
}

// Size returns the number of elements.
func (l List[T]) Size() int {
	if l.rep == nil {
		return 0
	}
	return l.rep.length()
}

// IsEmpty reports whether the list has no elements.
func (l List[T]) IsEmpty() bool {
	return l.Size() == 0
}

// Kind returns the kind of the active internal representation. This is a
// diagnostic; the observable behavior of a list does not depend on it.
func (l List[T]) Kind() Kind {
	return l.norm().kind()
}

// Get returns the element at the given index.
func (l List[T]) Get(i int) (T, error) {
	if i < 0 || i >= l.Size() {
		var zero T
		return zero, fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, i, l.Size())
	}
	return l.rep.get(i), nil
}

// First returns the first element, or false if the list is empty.
func (l List[T]) First() (T, bool) {
	if l.IsEmpty() {
		var zero T
		return zero, false
	}
	return l.rep.get(0), true
}

// Last returns the last element, or false if the list is empty.
func (l List[T]) Last() (T, bool) {
	if l.IsEmpty() {
		var zero T
		return zero, false
	}
	return l.rep.get(l.rep.length() - 1), true
}

// ForEach invokes yield for every element in logical order, stopping early
// if yield returns false.
func (l List[T]) ForEach(yield func(T) bool) {
	l.norm().each(yield)
}

// Values returns a restartable iterator over the elements in logical order.
func (l List[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		l.norm().each(yield)
	}
}

// ToSlice returns an independent copy of all elements.
func (l List[T]) ToSlice() []T {
	return toSlice(l.norm())
}

// prepared returns the representation to apply a mutating operation to,
// given the size the operation will produce. If the thresholds select a
// different representation for that size, the elements are bulk-copied into
// the new representation first and the listener is notified.
func (l List[T]) prepared(resulting int) representation[T] {
	rep := l.norm()
	want := l.cfg.Thresholds.orDefault().target(rep.kind(), resulting)
	if want == rep.kind() {
		return rep
	}
	if l.cfg.Listener != nil {
		l.cfg.Listener.OnMigration(rep.kind(), want, resulting)
	}
	return buildRepr(want, toSlice(rep))
}

// Set returns a new list with the element at the given index replaced.
func (l List[T]) Set(i int, value T) (List[T], error) {
	if i < 0 || i >= l.Size() {
		return List[T]{}, fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, i, l.Size())
	}
	return List[T]{cfg: l.cfg, rep: l.prepared(l.Size()).set(i, value)}, nil
}

// Insert returns a new list with the value inserted before the given index.
// Index may equal the size, in which case the value is appended.
func (l List[T]) Insert(i int, value T) (List[T], error) {
	if i < 0 || i > l.Size() {
		return List[T]{}, fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, i, l.Size())
	}
	return List[T]{cfg: l.cfg, rep: l.prepared(l.Size() + 1).insert(i, value)}, nil
}

// Remove returns a new list with the element at the given index removed.
func (l List[T]) Remove(i int) (List[T], error) {
	if i < 0 || i >= l.Size() {
		return List[T]{}, fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, i, l.Size())
	}
	return List[T]{cfg: l.cfg, rep: l.prepared(l.Size() - 1).remove(i)}, nil
}

// Append returns a new list with the value added at the end.
func (l List[T]) Append(value T) List[T] {
	return List[T]{cfg: l.cfg, rep: l.prepared(l.Size() + 1).append(value)}
}

// Prepend returns a new list with the value added at the front.
func (l List[T]) Prepend(value T) List[T] {
	return List[T]{cfg: l.cfg, rep: l.prepared(l.Size() + 1).prepend(value)}
}

// Concat returns a new list holding the elements of this list followed by
// the elements of the other list. The receiver's configuration carries over.
func (l List[T]) Concat(other List[T]) List[T] {
	if other.IsEmpty() {
		return l
	}
	resulting := l.Size() + other.Size()
	rep := l.prepared(resulting)
	session := newEditSession()
	tr := rep.asTransient(session)
	other.ForEach(func(v T) bool {
		tr.append(v)
		return true
	})
	session.closed = true
	return List[T]{cfg: l.cfg, rep: tr.freeze()}
}

// Slice returns a new list holding a copy of the elements in [from, to).
// The result is constructed fresh, with the representation the thresholds
// select for its size.
func (l List[T]) Slice(from, to int) (List[T], error) {
	if from < 0 || to < from || to > l.Size() {
		return List[T]{}, fmt.Errorf("%w: range [%d,%d), size %d", ErrIndexOutOfRange, from, to, l.Size())
	}
	if from == to {
		return List[T]{cfg: l.cfg}, nil
	}
	return FromWithConfig(l.cfg, l.rep.sliceRange(from, to)), nil
}
