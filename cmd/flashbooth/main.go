package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/internal/cli"
	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/pkg/flashbooth"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(flashbooth.ExitPanic)
		}
	}()

	if os.Getenv("FLASHBOOTH_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(flashbooth.ExitCodeForError(err))
	}
}
