// FILE: crash.go
package glint

import (
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
)

// CrashHandler is the platform collaborator of the fatal pipeline. Install
// registers process signal handlers that route terminating signals into the
// framework as fatal captures; StackTrace must be usable from a fatal
// context; ExitWithDefaultSignalHandler restores the default disposition for
// the signal and re-raises it (a controlled abort for signal id 0).
type CrashHandler interface {
	Install()
	StackTrace() string
	ExitWithDefaultSignalHandler(level Level, signalID int)
}

var (
	crashMu      sync.Mutex
	currentCrash CrashHandler = &unixCrashHandler{}
)

func crashHandler() CrashHandler {
	crashMu.Lock()
	defer crashMu.Unlock()
	return currentCrash
}

// SetCrashHandler replaces the platform crash handler. Must be called before
// Initialize; the handler's Install runs once at first initialization.
func SetCrashHandler(h CrashHandler) {
	if h == nil {
		return
	}
	crashMu.Lock()
	defer crashMu.Unlock()
	currentCrash = h
}

// unixCrashHandler routes asynchronous terminating signals through the fatal
// pipeline so buffered records reach every sink before the process dies with
// the originating signal.
type unixCrashHandler struct {
	once sync.Once
}

var fatalSignals = []os.Signal{
	syscall.SIGABRT,
	syscall.SIGFPE,
	syscall.SIGILL,
	syscall.SIGSEGV,
	syscall.SIGTERM,
}

func (h *unixCrashHandler) Install() {
	h.once.Do(func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, fatalSignals...)
		go func() {
			for sig := range ch {
				signalCapture(sig)
			}
		}()
	})
}

// signalCapture turns a received OS signal into a fatal capture carrying the
// signal number, so the normal flush-then-exit path handles it.
func signalCapture(sig os.Signal) {
	num, ok := sig.(syscall.Signal)
	if !ok {
		return
	}
	c := NewCapture(FATAL)
	c.fatalSignal = int(num)
	defer c.Close()
	c.Capturef("Received fatal signal: %s (%d)", signalName(int(num)), int(num))
}

func (h *unixCrashHandler) StackTrace() string {
	buf := make([]byte, 64*1024)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}

func (h *unixCrashHandler) ExitWithDefaultSignalHandler(level Level, signalID int) {
	sig := syscall.Signal(signalID)
	if signalID == 0 {
		// Contract breaks exit through a controlled abort.
		sig = syscall.SIGABRT
	}
	signal.Reset(sig)
	_ = syscall.Kill(os.Getpid(), sig)
	// Reached only if the re-raised signal was blocked or ignored.
	os.Exit(128 + int(sig))
}
