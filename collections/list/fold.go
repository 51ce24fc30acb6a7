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

// The element-type-changing bulk operations are package-level functions
// because Go methods cannot introduce additional type parameters. The fused
// variants traverse the list exactly once; their results are identical to
// composing the individual operations.

// Map returns a new list with transform applied to every element. Since
// every element changes, no structure is shared with the source.
func Map[T, U any](l List[T], transform func(T) U) List[U] {
	elems := make([]U, 0, l.Size())
	l.ForEach(func(v T) bool {
		elems = append(elems, transform(v))
		return true
	})
	return fromFold(l.cfg, l.Kind(), elems)
}

// Map returns a new list with transform applied to every element.
func (l List[T]) Map(transform func(T) T) List[T] {
	return Map(l, transform)
}

// Filter returns a new list holding the elements for which keep returns
// true, in their original order.
func (l List[T]) Filter(keep func(T) bool) List[T] {
	elems := make([]T, 0, l.Size())
	l.ForEach(func(v T) bool {
		if keep(v) {
			elems = append(elems, v)
		}
		return true
	})
	return fromFold(l.cfg, l.Kind(), elems)
}

// Reduce folds the elements in logical order into an accumulator.
func Reduce[T, A any](l List[T], fold func(A, T) A, init A) A {
	acc := init
	l.ForEach(func(v T) bool {
		acc = fold(acc, v)
		return true
	})
	return acc
}

// MapFilter applies transform to every element and keeps the results for
// which keep returns true; equivalent to Map followed by Filter in a single
// traversal.
func MapFilter[T, U any](l List[T], transform func(T) U, keep func(U) bool) List[U] {
	elems := make([]U, 0, l.Size())
	l.ForEach(func(v T) bool {
		if mapped := transform(v); keep(mapped) {
			elems = append(elems, mapped)
		}
		return true
	})
	return fromFold(l.cfg, l.Kind(), elems)
}

// FilterMap keeps the elements for which keep returns true and applies
// transform to them; equivalent to Filter followed by Map in a single
// traversal.
func FilterMap[T, U any](l List[T], keep func(T) bool, transform func(T) U) List[U] {
	elems := make([]U, 0, l.Size())
	l.ForEach(func(v T) bool {
		if keep(v) {
			elems = append(elems, transform(v))
		}
		return true
	})
	return fromFold(l.cfg, l.Kind(), elems)
}

// MapReduce applies transform to every element and folds the results;
// equivalent to Map followed by Reduce in a single traversal.
func MapReduce[T, U, A any](l List[T], transform func(T) U, fold func(A, U) A, init A) A {
	acc := init
	l.ForEach(func(v T) bool {
		acc = fold(acc, transform(v))
		return true
	})
	return acc
}

// FilterReduce folds the elements for which keep returns true; equivalent
// to Filter followed by Reduce in a single traversal.
func FilterReduce[T, A any](l List[T], keep func(T) bool, fold func(A, T) A, init A) A {
	acc := init
	l.ForEach(func(v T) bool {
		if keep(v) {
			acc = fold(acc, v)
		}
		return true
	})
	return acc
}

// MapFilterReduce applies transform to every element, keeps the results for
// which keep returns true, and folds them; equivalent to Map, Filter and
// Reduce composed, in a single traversal.
func MapFilterReduce[T, U, A any](l List[T], transform func(T) U, keep func(U) bool, fold func(A, U) A, init A) A {
	acc := init
	l.ForEach(func(v T) bool {
		if mapped := transform(v); keep(mapped) {
			acc = fold(acc, mapped)
		}
		return true
	})
	return acc
}

// fromFold builds the result list of a bulk operation: size-preserving
// results keep the source representation kind, shrinking or growing results
// follow the same migration policy as the mutating operations.
func fromFold[U any](cfg Config, sourceKind Kind, elems []U) List[U] {
	if len(elems) == 0 {
		return List[U]{cfg: cfg}
	}
	thresholds := cfg.Thresholds.orDefault()
	kind := thresholds.target(sourceKind, len(elems))
	if kind != sourceKind && cfg.Listener != nil {
		cfg.Listener.OnMigration(sourceKind, kind, len(elems))
	}
	return List[U]{cfg: cfg, rep: buildRepr(kind, elems)}
}
