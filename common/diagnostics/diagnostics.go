// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package diagnostics wraps CLI actions with optional CPU profiling,
// execution tracing, and a pprof diagnostic server, controlled by a shared
// set of command line flags.
package diagnostics

import (
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"strings"

	"github.com/urfave/cli/v2"
)

var (
	// DiagnosticPortFlag enables a realtime pprof server on the given port.
	DiagnosticPortFlag = cli.IntFlag{
		Name:  "diagnostic-port",
		Usage: "enable hosting of a realtime diagnostic server by providing a port",
		Value: 0,
	}

	// CpuProfileFlag directs a CPU profile of the wrapped action into a file.
	CpuProfileFlag = cli.StringFlag{
		Name:  "cpuprofile",
		Usage: "sets the target file for storing CPU profiles to, disabled if empty",
		Value: "",
	}

	// TraceFlag directs an execution trace of the wrapped action into a file.
	TraceFlag = cli.StringFlag{
		Name:  "tracefile",
		Usage: "sets the target file for traces to, disabled if empty",
		Value: "",
	}
)

// Flags returns the diagnostic flags to be registered on the application
// using WrapAction on its commands.
func Flags() []cli.Flag {
	return []cli.Flag{&DiagnosticPortFlag, &CpuProfileFlag, &TraceFlag}
}

// WrapAction wraps an action function such that CPU profiling, execution
// tracing, and a diagnostic pprof server are activated for its duration
// when the corresponding flags are set.
func WrapAction(action cli.ActionFunc) cli.ActionFunc {
	return func(context *cli.Context) error {
		startDiagnosticServer(context.Int(DiagnosticPortFlag.Name))

		if file := strings.TrimSpace(context.String(CpuProfileFlag.Name)); file != "" {
			if err := startCpuProfiler(file); err != nil {
				return err
			}
			defer pprof.StopCPUProfile()
		}

		if file := strings.TrimSpace(context.String(TraceFlag.Name)); file != "" {
			if err := startTracer(file); err != nil {
				return err
			}
			defer trace.Stop()
		}

		return action(context)
	}
}

func startDiagnosticServer(port int) {
	if port <= 0 || port >= (1<<16) {
		return
	}
	fmt.Printf("Starting diagnostic server at port http://localhost:%d\n", port)
	fmt.Printf("(see https://pkg.go.dev/net/http/pprof#hdr-Usage_examples for usage examples)\n")
	fmt.Printf("Block and mutex sampling rate is set to 100%% for diagnostics, which may impact overall performance\n")
	go func() {
		addr := fmt.Sprintf("localhost:%d", port)
		log.Println(http.ListenAndServe(addr, nil))
	}()
	runtime.SetBlockProfileRate(1)
	runtime.SetMutexProfileFraction(1)
}

func startCpuProfiler(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %s", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		return fmt.Errorf("could not start CPU profile: %s", err)
	}
	return nil
}

func startTracer(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %v", err)
	}
	if err := trace.Start(f); err != nil {
		return fmt.Errorf("failed to start trace: %v", err)
	}
	return nil
}
