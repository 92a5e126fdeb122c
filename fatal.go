// FILE: fatal.go
package glint

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

var (
	hookMu       sync.Mutex
	preFatalHook = func() {}

	dispatchMu    sync.Mutex
	fatalDispatch func(*FatalRecord)

	fatalRecursion  atomic.Uint64
	firstStackTrace atomic.Pointer[string]
	blockForFatal   atomic.Bool
)

func init() {
	fatalDispatch = pushFatalRecordToWorker
	blockForFatal.Store(true)
}

const recursiveFatalWarning = "\n\n\nWARNING\n" +
	"A recursive fatal event was detected. It is likely the hook set with " +
	"SetFatalPreLoggingHook(...) is responsible\n\n"

// SetFatalPreLoggingHook installs a callback invoked on the producer
// goroutine just before a fatal record is dispatched. Typical use is a
// debugger trap. Reset to a no-op by Initialize, so install it afterwards.
func SetFatalPreLoggingHook(hook func()) {
	hookMu.Lock()
	defer hookMu.Unlock()
	preFatalHook = hook
}

// swapPreFatalHook atomically replaces the hook with a no-op and returns the
// previous one, so the hook can never re-enter itself.
func swapPreFatalHook() func() {
	hookMu.Lock()
	defer hookMu.Unlock()
	hook := preFatalHook
	preFatalHook = func() {}
	return hook
}

// SetFatalExitHandler replaces the fatal dispatch function. Tests install a
// handler that records the fatal event or raises a recoverable error instead
// of terminating the process; such a handler also releases the producer from
// the fatal parking loop. Passing nil restores the default dispatch.
func SetFatalExitHandler(fn func(*FatalRecord)) {
	dispatchMu.Lock()
	defer dispatchMu.Unlock()
	if fn == nil {
		fatalDispatch = pushFatalRecordToWorker
		blockForFatal.Store(true)
		return
	}
	fatalDispatch = fn
	blockForFatal.Store(false)
}

func shouldBlockForFatalHandling() bool {
	return blockForFatal.Load()
}

// saveFatalRecord runs the fatal pipeline on the producer goroutine:
// hook swap, recursion accounting, stack-trace append, dispatch.
func saveFatalRecord(r *Record, signalID int, stackTrace string) {
	hook := swapPreFatalHook()
	fatalRecursion.Add(1)

	// Benign race: two goroutines crashing at once may both reach this CAS;
	// whichever trace lands first is the one kept, which is fine since it
	// was anyhow the first crash detected.
	trace := stackTrace
	firstStackTrace.CompareAndSwap(nil, &trace)

	hook()
	r.WriteString(stackTrace)

	if fatalRecursion.Load() > 1 {
		first := ""
		if p := firstStackTrace.Load(); p != nil {
			first = *p
		}
		r.WriteString(recursiveFatalWarning)
		r.WriteString("---First fatal stacktrace: ")
		r.WriteString(first)
		r.WriteString("\n---End of first stacktrace\n")
	}

	fatalCall(&FatalRecord{Record: r, SignalID: signalID})
}

// fatalCall forwards through the swappable dispatch slot.
func fatalCall(fr *FatalRecord) {
	dispatchMu.Lock()
	dispatch := fatalDispatch
	dispatchMu.Unlock()
	dispatch(fr)
}

// pushFatalRecordToWorker is the default fatal dispatch. It enqueues the
// terminal task and parks the calling goroutine: the caller never returns
// normally, the worker terminates the process once every earlier record has
// been flushed.
func pushFatalRecordToWorker(fr *FatalRecord) {
	w := activeWorker.Load()
	if w == nil {
		fmt.Fprintf(os.Stderr,
			"FATAL CALL but logger is NOT initialized\nCAUSE: %s\nRecord:\n%s\n",
			fr.Reason(), fr.Record.String())
		crashHandler().ExitWithDefaultSignalHandler(fr.Record.Level, fr.SignalID)
		return
	}

	w.SaveFatal(fr)
	for shouldBlockForFatalHandling() {
		time.Sleep(time.Second)
	}
}
