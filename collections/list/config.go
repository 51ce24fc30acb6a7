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

//go:generate mockgen -source config.go -destination migration_mocks.go -package list

// Kind identifies one of the internal representations a List may use to
// store its elements.
type Kind byte

const (
	// KindSmall is a plain copied array, used for tiny lists where the
	// constant-factor overhead of chunk or tree bookkeeping dominates.
	KindSmall Kind = iota

	// KindChunked is a sequence of fixed-size chunks with partially filled
	// boundary chunks, offering O(1) amortized append/prepend and O(1)
	// random access.
	KindChunked

	// KindTree is a 32-way trie of chunks offering O(log n) access and
	// update with structural sharing of untouched subtrees.
	KindTree
)

func (k Kind) String() string {
	switch k {
	case KindSmall:
		return "small"
	case KindChunked:
		return "chunked"
	case KindTree:
		return "tree"
	}
	return "unknown"
}

// Thresholds are the size boundaries at which a List migrates between
// representations. The lower bounds are deliberately below the respective
// upper bounds (hysteresis), so that alternating insert/remove traffic near
// a boundary does not migrate back and forth on every operation.
//
// The zero value selects the defaults.
type Thresholds struct {
	SmallUpper int // sizes above this leave the small representation
	SmallLower int // sizes at or below this return to the small representation
	ChunkUpper int // sizes above this leave the chunked representation
	ChunkLower int // sizes at or below this return to the chunked representation
}

const (
	defaultSmallUpper = 32
	defaultSmallLower = 24
	defaultChunkUpper = 1024
	defaultChunkLower = 768
)

// DefaultThresholds returns the default representation boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SmallUpper: defaultSmallUpper,
		SmallLower: defaultSmallLower,
		ChunkUpper: defaultChunkUpper,
		ChunkLower: defaultChunkLower,
	}
}

// orDefault resolves the zero value to the default thresholds.
func (t Thresholds) orDefault() Thresholds {
	if t == (Thresholds{}) {
		return DefaultThresholds()
	}
	return t
}

// initial selects the representation for a freshly constructed list of the
// given size.
func (t Thresholds) initial(size int) Kind {
	switch {
	case size <= t.SmallUpper:
		return KindSmall
	case size <= t.ChunkUpper:
		return KindChunked
	default:
		return KindTree
	}
}

// target selects the representation for the given resulting size of a
// mutating operation, applying hysteresis relative to the current
// representation: growth migrates eagerly at the upper bounds, shrinkage
// migrates only once the size has dropped to the lower bounds.
func (t Thresholds) target(current Kind, size int) Kind {
	switch current {
	case KindSmall:
		return t.initial(size)
	case KindChunked:
		if size > t.ChunkUpper {
			return KindTree
		}
		if size <= t.SmallLower {
			return KindSmall
		}
		return KindChunked
	case KindTree:
		if size <= t.SmallLower {
			return KindSmall
		}
		if size <= t.ChunkLower {
			return KindChunked
		}
		return KindTree
	}
	return current
}

// MigrationListener observes representation changes of a List. It is mainly
// a diagnostic hook for tests and tooling; production code does not need it.
type MigrationListener interface {
	// OnMigration is called after a list operation replaced the active
	// representation, with the old and new kind and the size of the
	// resulting list.
	OnMigration(from, to Kind, size int)
}

// Config carries the construction-time parameters of a List. The zero value
// is valid and selects the default thresholds and no listener.
type Config struct {
	// Thresholds are the representation boundaries; the zero value selects
	// the defaults.
	Thresholds Thresholds

	// Listener, if non-nil, is notified about representation migrations.
	Listener MigrationListener
}
