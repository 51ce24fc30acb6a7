// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/koficodedat/reduct-sub005/collections/list"
	"github.com/koficodedat/reduct-sub005/common/diagnostics"
	"github.com/pbnjay/memory"
	"github.com/urfave/cli/v2"
)

// Stress builds large lists through both the persistent API and the
// transient batch API, sized against the memory available on the host, and
// reports throughput and memory usage of each phase.
var Stress = cli.Command{
	Action: diagnostics.WrapAction(stress),
	Name:   "stress",
	Usage:  "builds memory-sized lists and reports throughput",
	Flags: []cli.Flag{
		&numElementsFlag,
		&memFractionFlag,
	},
}

var (
	numElementsFlag = cli.IntFlag{
		Name:  "num-elements",
		Usage: "the number of elements to load; 0 sizes the load against available memory",
		Value: 0,
	}
	memFractionFlag = cli.Float64Flag{
		Name:  "mem-fraction",
		Usage: "the fraction of total memory to fill when sizing automatically",
		Value: 0.05,
	}
)

func stress(context *cli.Context) error {
	elements := context.Int(numElementsFlag.Name)
	if elements <= 0 {
		fraction := context.Float64(memFractionFlag.Name)
		if fraction <= 0 || fraction > 0.5 {
			return fmt.Errorf("invalid memory fraction %v, must be in (0, 0.5]", fraction)
		}
		// An int64 element costs 8 bytes of payload; chunk and branch
		// bookkeeping roughly doubles that.
		const bytesPerElement = 16
		elements = int(float64(memory.TotalMemory()) * fraction / bytesPerElement)
		fmt.Printf("Sizing load against %.1f GiB of total memory\n",
			float64(memory.TotalMemory())/(1<<30))
	}
	fmt.Printf("Loading %d elements ...\n", elements)

	start := time.Now()
	tr := list.Empty[int64]().Transient()
	for i := range elements {
		if err := tr.Append(int64(i)); err != nil {
			return fmt.Errorf("transient append failed at %d: %w", i, err)
		}
	}
	l, err := tr.Persistent()
	if err != nil {
		return fmt.Errorf("failed to freeze transient: %w", err)
	}
	transientTime := time.Since(start)
	reportPhase("transient build", elements, transientTime)

	start = time.Now()
	p := list.Empty[int64]()
	for i := range elements {
		p = p.Append(int64(i))
	}
	reportPhase("persistent build", elements, time.Since(start))

	start = time.Now()
	var sum int64
	l.ForEach(func(v int64) bool {
		sum += v
		return true
	})
	reportPhase("iteration", elements, time.Since(start))

	want := int64(elements) * int64(elements-1) / 2
	if sum != want {
		return fmt.Errorf("content corrupted: checksum %d, want %d", sum, want)
	}
	if p.Size() != l.Size() {
		return fmt.Errorf("size mismatch between build modes: %d vs %d", p.Size(), l.Size())
	}

	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	fmt.Printf("Heap in use: %.1f MiB, representation: %s\n",
		float64(stats.HeapInuse)/(1<<20), l.Kind())
	return nil
}

func reportPhase(name string, elements int, took time.Duration) {
	rate := float64(elements) / took.Seconds()
	fmt.Printf("%-16s %10d elements in %8v (%.2e elements/s)\n",
		name, elements, took.Round(time.Millisecond), rate)
}
