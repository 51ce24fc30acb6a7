// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package stack provides an immutable LIFO stack backed by shared cons
// cells. Push and Pop are O(1) and allocate at most one cell; all values
// derived from a common stack share their tails.
package stack

import "iter"

// Stack is an immutable LIFO sequence. Every mutating operation returns a
// new Stack value and leaves the receiver unchanged. The zero value is a
// valid empty stack.
//
// Stacks are safe for concurrent reads without synchronization; cells are
// never mutated after publication.
type Stack[T any] struct {
	head *cell[T]
	size int
}

type cell[T any] struct {
	value T
	next  *cell[T]
}

// Empty returns an empty stack.
func Empty[T any]() Stack[T] {
	return Stack[T]{}
}

// From returns a stack holding the given elements, with the last element of
// the slice on top.
func From[T any](elems []T) Stack[T] {
	s := Stack[T]{}
	for _, v := range elems {
		s = s.Push(v)
	}
	return s
}

// Size returns the number of elements.
func (s Stack[T]) Size() int {
	return s.size
}

// IsEmpty reports whether the stack has no elements.
func (s Stack[T]) IsEmpty() bool {
	return s.size == 0
}

// Push returns a new stack with the value on top. The receiver's cells are
// shared as the tail of the result.
func (s Stack[T]) Push(value T) Stack[T] {
	return Stack[T]{head: &cell[T]{value: value, next: s.head}, size: s.size + 1}
}

// Pop returns the top element and the stack without it, or false if the
// stack is empty.
func (s Stack[T]) Pop() (T, Stack[T], bool) {
	if s.head == nil {
		var zero T
		return zero, Stack[T]{}, false
	}
	return s.head.value, Stack[T]{head: s.head.next, size: s.size - 1}, true
}

// Peek returns the top element, or false if the stack is empty.
func (s Stack[T]) Peek() (T, bool) {
	if s.head == nil {
		var zero T
		return zero, false
	}
	return s.head.value, true
}

// Values returns a restartable iterator over the elements from top to
// bottom.
func (s Stack[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for c := s.head; c != nil; c = c.next {
			if !yield(c.value) {
				return
			}
		}
	}
}

// ToSlice returns the elements from top to bottom as an independent slice.
func (s Stack[T]) ToSlice() []T {
	res := make([]T, 0, s.size)
	for c := s.head; c != nil; c = c.next {
		res = append(res, c.value)
	}
	return res
}
