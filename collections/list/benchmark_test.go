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
	"math/rand"
	"testing"
)

var benchmarkSizes = []int{16, 512, 16 * 1024, 512 * 1024}

func forEachBenchmarkSize(b *testing.B, run func(b *testing.B, l List[int], size int)) {
	for _, size := range benchmarkSizes {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			l := From(sequence(0, size))
			b.ResetTimer()
			run(b, l, size)
		})
	}
}

func Benchmark_List_Get(b *testing.B) {
	forEachBenchmarkSize(b, func(b *testing.B, l List[int], size int) {
		for i := 0; i < b.N; i++ {
			if _, err := l.Get(i % size); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func Benchmark_List_Set(b *testing.B) {
	forEachBenchmarkSize(b, func(b *testing.B, l List[int], size int) {
		for i := 0; i < b.N; i++ {
			if _, err := l.Set(i%size, i); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func Benchmark_List_Append(b *testing.B) {
	forEachBenchmarkSize(b, func(b *testing.B, l List[int], size int) {
		for i := 0; i < b.N; i++ {
			l.Append(i)
		}
	})
}

func Benchmark_List_Prepend(b *testing.B) {
	forEachBenchmarkSize(b, func(b *testing.B, l List[int], size int) {
		for i := 0; i < b.N; i++ {
			l.Prepend(i)
		}
	})
}

func Benchmark_List_InsertMiddle(b *testing.B) {
	forEachBenchmarkSize(b, func(b *testing.B, l List[int], size int) {
		for i := 0; i < b.N; i++ {
			if _, err := l.Insert(size/2, i); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func Benchmark_List_RandomAccess(b *testing.B) {
	forEachBenchmarkSize(b, func(b *testing.B, l List[int], size int) {
		rng := rand.New(rand.NewSource(42))
		for i := 0; i < b.N; i++ {
			if _, err := l.Get(rng.Intn(size)); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func Benchmark_List_Iterate(b *testing.B) {
	forEachBenchmarkSize(b, func(b *testing.B, l List[int], size int) {
		for i := 0; i < b.N; i++ {
			sum := 0
			l.ForEach(func(v int) bool {
				sum += v
				return true
			})
			if sum == -1 {
				b.Fatal("unexpected sum")
			}
		}
	})
}

func Benchmark_List_BuildByAppend(b *testing.B) {
	for _, size := range benchmarkSizes {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				l := Empty[int]()
				for j := range size {
					l = l.Append(j)
				}
			}
		})
	}
}

func Benchmark_List_BuildByTransient(b *testing.B) {
	for _, size := range benchmarkSizes {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				tr := Empty[int]().Transient()
				for j := range size {
					if err := tr.Append(j); err != nil {
						b.Fatal(err)
					}
				}
				if _, err := tr.Persistent(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
