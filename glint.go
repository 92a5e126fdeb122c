// FILE: glint.go
// Package glint is an asynchronous logging and design-by-contract framework.
// Producer goroutines hand records to one background worker which fans each
// record out to user-registered sinks; fatal events (contract breaks, fatal
// levels, terminating signals) flush every buffered record to every sink
// before the process exits with the originating signal.
package glint

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
)

var (
	// Crash handler installation happens once per process even if the
	// logger is initialized several times (unit tests do that).
	installOnce sync.Once

	// slotMu guards transitions of the global worker slot. Hot-path reads
	// go through the atomic pointer without the mutex.
	slotMu       sync.Mutex
	activeWorker atomic.Pointer[Worker]

	firstUninitSetOnce  sync.Once
	firstUninitSaveOnce sync.Once
	firstUninitRecord   atomic.Pointer[Record]
)

// swappable for the illegal-initialization test
var osExit = os.Exit

// IsInitialized reports whether a worker currently occupies the global slot.
func IsInitialized() bool {
	return activeWorker.Load() != nil
}

func firstUninitEmpty() bool {
	return firstUninitRecord.Load() == nil
}

// Initialize installs w as the process-wide current logger. Must be called
// once at startup; the caller keeps ownership of the Worker. Double
// initialization or a nil worker is a fatal configuration error: the process
// exits with a failure code after a stderr message.
//
// If a record was captured before initialization it is enqueued on w here,
// ahead of any other work.
func Initialize(w *Worker) {
	installOnce.Do(func() {
		crashHandler().Install()
	})

	slotMu.Lock()
	defer slotMu.Unlock()
	if IsInitialized() || w == nil {
		fmt.Fprintf(os.Stderr,
			"glint: fatal exit due to illegal initialization of glint.Worker\n"+
				"\t(double initialization? %v, nil worker? %v)\n",
			IsInitialized(), w == nil)
		osExit(1)
		return
	}

	firstUninitSaveOnce.Do(func() {
		if r := firstUninitRecord.Load(); r != nil {
			w.Save(r)
		}
	})

	activeWorker.Store(w)
	SetFatalPreLoggingHook(func() {})
	fatalRecursion.Store(0)
}

// Shutdown clears the global slot. Further captures are ignored; the Worker
// itself stays alive and owned by the caller. Worker.Close is the normal way
// to stop the framework and calls this internally.
func Shutdown() {
	shutDownLogging()
}

func shutDownLogging() {
	slotMu.Lock()
	defer slotMu.Unlock()
	activeWorker.Store(nil)
}

// shutDownLoggingForActiveOnly clears the slot only when active is the
// worker currently installed. A mismatch means two Worker instances exist,
// which is almost certainly a bug; the call is ignored with a warning record
// (mirrored to stderr in case the slot disappears before the warning drains).
func shutDownLoggingForActiveOnly(active *Worker) bool {
	if IsInitialized() && active != nil && activeWorker.Load() != active {
		const warn = "Attempted to shut down logging, but the Worker is not the one that is active.\n" +
			"\t\tHaving multiple glint.Worker instances is likely a bug.\n" +
			"\t\tEither way, this shutdown call was ignored."
		Warning(warn)
		internalLog("%s\n", warn)
		return false
	}
	shutDownLogging()
	return true
}

// saveRecord is the single funnel from capture scopes into the framework.
// fatalSignal is 0 for non-fatal records and contract breaks, the signal
// number otherwise.
func saveRecord(r *Record, fatalSignal int) {
	if r.Level.Value < minLevel.Load() {
		return
	}

	if IsFatal(r.Level) {
		// Pure contract violations carry no stack trace.
		trace := ""
		if fatalSignal != 0 {
			trace = crashHandler().StackTrace()
		}
		saveFatalRecord(r, fatalSignal, trace)
		return
	}

	pushRecordToWorker(r)
}

// pushRecordToWorker forwards a non-fatal record to the current worker. The
// first record to arrive before initialization is stashed (once) with a
// rewritten body and mirrored to stderr; any later pre-init record is
// dropped. The stash is re-enqueued by Initialize so it is never lost.
func pushRecordToWorker(r *Record) {
	w := activeWorker.Load()
	if w == nil {
		firstUninitSetOnce.Do(func() {
			r.setMessage("LOGGER NOT INITIALIZED:\n\t\t" + r.Message())
			firstUninitRecord.Store(r)
			fmt.Fprintln(os.Stderr, r.String())
		})
		return
	}
	w.Save(r)
}
