// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package list provides an immutable, persistent list that adapts its
// internal representation to its size:
//   - tiny lists are flat arrays copied in full by every operation
//   - mid-size lists are sequences of fixed-size chunks with O(1) amortized
//     append/prepend and O(1) random access
//   - large lists are 32-way tries of chunks with O(log n) access and update
//     and structural sharing of untouched subtrees
//
// Migrations between the representations happen transparently when an
// operation moves the size across a threshold, as a single bulk copy. The
// boundaries carry hysteresis so that alternating growth and shrinkage near
// a threshold does not migrate on every operation.
//
// Derived lists share unchanged structure with the lists they were derived
// from; an earlier list value remains valid and unchanged no matter what is
// later derived from it. For batches of edits, a Transient provides in-place
// mutation that is re-frozen into a persistent value by a single call.
package list
