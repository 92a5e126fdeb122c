// FILE: cmd/contract/main.go
// Demonstrates the fatal pipeline: buffered records are flushed to the sink
// before the broken contract aborts the process.
package main

import (
	"fmt"
	"os"

	"github.com/glintlog/glint"
)

func main() {
	worker := glint.NewWorker()
	if _, err := glint.AddDefaultLogger(worker, os.Args[0], os.TempDir(), "contract"); err != nil {
		fmt.Fprintln(os.Stderr, "cannot create file sink:", err)
		os.Exit(1)
	}
	glint.Initialize(worker)

	glint.SetFatalPreLoggingHook(func() {
		fmt.Fprintln(os.Stderr, "pre-fatal hook: about to dispatch the fatal record")
	})

	for i := 0; i < 100; i++ {
		glint.Infof("buffered record %d", i)
	}

	// Broken contract: every record above reaches the sink, then the
	// process aborts with SIGABRT.
	glint.CheckEq(2, 3, " demo contract break")

	// Never reached.
	glint.Error("unreachable")
}
