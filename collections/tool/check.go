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
	"math/rand"
	"slices"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/koficodedat/reduct-sub005/collections/list"
	"github.com/koficodedat/reduct-sub005/common/diagnostics"
	"github.com/urfave/cli/v2"
)

// Check replays a random operation sequence against a plain slice oracle
// and fails on the first divergence. It crosses the representation
// thresholds in both directions many times, which makes it an effective
// consistency test for the migration machinery.
var Check = cli.Command{
	Action: diagnostics.WrapAction(check),
	Name:   "check",
	Usage:  "replays random operations against a reference oracle",
	Flags: []cli.Flag{
		&operationsFlag,
		&seedFlag,
		&verifyPeriodFlag,
	},
}

var (
	operationsFlag = cli.IntFlag{
		Name:  "operations",
		Usage: "the number of operations to replay",
		Value: 1_000_000,
	}
	seedFlag = cli.Int64Flag{
		Name:  "seed",
		Usage: "the seed of the operation sequence; 0 derives one from the current time",
		Value: 0,
	}
	verifyPeriodFlag = cli.IntFlag{
		Name:  "verify-period",
		Usage: "the number of operations between full content comparisons",
		Value: 1000,
	}
)

func check(context *cli.Context) error {
	operations := context.Int(operationsFlag.Name)
	seed := context.Int64(seedFlag.Name)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	verifyPeriod := context.Int(verifyPeriodFlag.Name)
	if verifyPeriod <= 0 {
		verifyPeriod = 1000
	}

	fmt.Printf("Replaying %d operations with seed %d ...\n", operations, seed)
	rng := rand.New(rand.NewSource(seed))
	faker := gofakeit.New(seed)

	migrations := 0
	cfg := list.Config{Listener: migrationCounter{&migrations}}
	l := list.EmptyWithConfig[string](cfg)
	oracle := []string{}

	start := time.Now()
	for step := range operations {
		var err error
		// Bias towards growth until the sequence has crossed into the tree
		// representation at least once, then let it drift.
		grow := rng.Intn(5) < 3 || len(oracle) < 2
		switch op := rng.Intn(6); {
		case grow && op <= 1:
			v := faker.Word()
			l = l.Append(v)
			oracle = append(oracle, v)
		case grow && op == 2:
			v := faker.Word()
			l = l.Prepend(v)
			oracle = append([]string{v}, oracle...)
		case grow && op >= 3:
			i, v := rng.Intn(len(oracle)+1), faker.Word()
			if l, err = l.Insert(i, v); err != nil {
				return fmt.Errorf("insert at %d failed at step %d: %w", i, step, err)
			}
			oracle = slices.Insert(oracle, i, v)
		case op <= 2 && len(oracle) > 0:
			i := rng.Intn(len(oracle))
			if l, err = l.Remove(i); err != nil {
				return fmt.Errorf("remove at %d failed at step %d: %w", i, step, err)
			}
			oracle = slices.Delete(oracle, i, i+1)
		case len(oracle) > 0:
			i, v := rng.Intn(len(oracle)), faker.Word()
			if l, err = l.Set(i, v); err != nil {
				return fmt.Errorf("set at %d failed at step %d: %w", i, step, err)
			}
			oracle[i] = v
		default:
			continue
		}

		if l.Size() != len(oracle) {
			return fmt.Errorf("size diverged at step %d: got %d, want %d", step, l.Size(), len(oracle))
		}
		if step%verifyPeriod == 0 && !slices.Equal(l.ToSlice(), oracle) {
			return fmt.Errorf("contents diverged at step %d (seed %d)", step, seed)
		}
	}
	if !slices.Equal(l.ToSlice(), oracle) {
		return fmt.Errorf("final contents diverged (seed %d)", seed)
	}

	fmt.Printf("All %d operations consistent, final size %d (%s), %d migrations, took %v\n",
		operations, l.Size(), l.Kind(), migrations, time.Since(start).Round(time.Millisecond))
	return nil
}

// migrationCounter counts representation changes of the checked list.
type migrationCounter struct {
	count *int
}

func (c migrationCounter) OnMigration(from, to list.Kind, size int) {
	*c.count++
}
