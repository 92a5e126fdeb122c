// FILE: cmd/simple/main.go
// Basic usage: one worker, the default file sink, a few records, shutdown.
package main

import (
	"fmt"
	"os"

	"github.com/glintlog/glint"
)

func main() {
	dir := os.TempDir()

	worker := glint.NewWorker()
	handle, err := glint.AddDefaultLogger(worker, os.Args[0], dir, "")
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot create file sink:", err)
		os.Exit(1)
	}
	glint.Initialize(worker)

	glint.Info("simple demo starting")
	glint.Infof("writing to %s", dir)
	glint.Warning("this is a warning")
	glint.CheckGe(len(os.Args), 1, " argv must hold the program name")

	name, _ := glint.CallSink(handle, func(s *glint.FileSink) string {
		return s.FileName()
	}).Result()

	// Close drains the queue into the sink before the process ends.
	worker.Close()
	fmt.Println("log written to", name)
}
