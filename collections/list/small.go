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

// small is the representation for tiny lists: a single immutable backing
// slice that is copied in full by every mutating operation. For sizes below
// the small threshold the copy is cheaper than any chunk or tree
// bookkeeping.
type small[T any] struct {
	elems []T
}

// newSmall creates a small representation holding a copy of the given
// elements.
func newSmall[T any](elems []T) *small[T] {
	res := &small[T]{elems: make([]T, len(elems))}
	copy(res.elems, elems)
	return res
}

func (s *small[T]) kind() Kind {
	return KindSmall
}

func (s *small[T]) length() int {
	return len(s.elems)
}

func (s *small[T]) get(i int) T {
	return s.elems[i]
}

func (s *small[T]) set(i int, value T) representation[T] {
	res := newSmall(s.elems)
	res.elems[i] = value
	return res
}

func (s *small[T]) insert(i int, value T) representation[T] {
	elems := make([]T, len(s.elems)+1)
	copy(elems, s.elems[:i])
	elems[i] = value
	copy(elems[i+1:], s.elems[i:])
	return &small[T]{elems: elems}
}

func (s *small[T]) remove(i int) representation[T] {
	elems := make([]T, len(s.elems)-1)
	copy(elems, s.elems[:i])
	copy(elems[i:], s.elems[i+1:])
	return &small[T]{elems: elems}
}

func (s *small[T]) append(value T) representation[T] {
	elems := make([]T, len(s.elems)+1)
	copy(elems, s.elems)
	elems[len(elems)-1] = value
	return &small[T]{elems: elems}
}

func (s *small[T]) prepend(value T) representation[T] {
	elems := make([]T, len(s.elems)+1)
	elems[0] = value
	copy(elems[1:], s.elems)
	return &small[T]{elems: elems}
}

func (s *small[T]) each(yield func(T) bool) {
	for _, v := range s.elems {
		if !yield(v) {
			return
		}
	}
}

func (s *small[T]) sliceRange(from, to int) []T {
	res := make([]T, to-from)
	copy(res, s.elems[from:to])
	return res
}

func (s *small[T]) asTransient(session *editSession) transientRepr[T] {
	return &transientSmall[T]{session: session, elems: s.elems}
}
