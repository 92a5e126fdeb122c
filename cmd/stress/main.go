// FILE: cmd/stress/main.go
// Multi-producer stress: several goroutines hammer the single worker, then a
// final sync proves every record was fanned out before shutdown.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/glintlog/glint"
)

func main() {
	producers := flag.Int("producers", 8, "number of producer goroutines")
	records := flag.Int("records", 10000, "records per producer")
	dir := flag.String("dir", os.TempDir(), "log directory")
	flag.Parse()

	worker := glint.NewWorker()
	handle, err := glint.AddDefaultLogger(worker, os.Args[0], *dir, "stress")
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot create file sink:", err)
		os.Exit(1)
	}
	glint.Initialize(worker)

	start := time.Now()
	var g errgroup.Group
	for p := 0; p < *producers; p++ {
		g.Go(func() error {
			every := glint.NewEveryN(glint.INFO, 1000)
			for i := 0; i < *records; i++ {
				glint.Infof("producer=%d record=%d", p, i)
				every.Logf("producer %d checkpoint at %d", p, i)
			}
			return nil
		})
	}
	_ = g.Wait()
	submitted := time.Since(start)

	if err := worker.Sync(); err != nil {
		fmt.Fprintln(os.Stderr, "sync failed:", err)
	}
	drained := time.Since(start)

	writes, _ := glint.CallSink(handle, func(s *glint.FileSink) uint64 {
		return s.Writes()
	}).Result()

	worker.Close()
	total := *producers * *records
	fmt.Printf("submitted %d records in %v, drained in %v, file writes: %d\n",
		total, submitted, drained, writes)
}
