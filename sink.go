// FILE: sink.go
package glint

// Sink consumes records on the worker goroutine. Receive takes ownership of
// its Record; fan-out clones per sink so implementations may mutate freely.
// A sink must not block the worker for unbounded time — slow sinks back up
// the single queue.
type Sink interface {
	Receive(r *Record)
}

// sinkWrapper owns one registered sink inside the worker's registry.
type sinkWrapper struct {
	sink   Sink
	closed bool
}

func (sw *sinkWrapper) receive(r *Record) {
	if sw.closed {
		return
	}
	sw.sink.Receive(r)
}

// close releases the sink. If it implements io.Closer the handle is closed;
// errors are the sink's concern and are dropped.
func (sw *sinkWrapper) close() {
	if sw.closed {
		return
	}
	sw.closed = true
	if c, ok := sw.sink.(interface{ Close() error }); ok {
		_ = c.Close()
	}
}

// SinkHandle is the capability returned by AddSink. It keeps the concrete
// sink type so user-defined methods can be invoked asynchronously on the
// worker goroutine, where the sink is guaranteed not to be mid-Receive.
type SinkHandle[T Sink] struct {
	worker  *Worker
	wrapper *sinkWrapper
	sink    T
}

// AddSink registers s with the worker and returns its typed handle. The
// registration itself runs as a task so the registry stays confined to the
// worker goroutine; AddSink waits for it to complete.
func AddSink[T Sink](w *Worker, s T) *SinkHandle[T] {
	sw := &sinkWrapper{sink: s}
	spawnTask(w.bg.Load(), func() (struct{}, error) {
		w.sinks = append(w.sinks, sw)
		return struct{}{}, nil
	}).Wait()
	return &SinkHandle[T]{worker: w, wrapper: sw, sink: s}
}

// Call runs fn against the sink on the worker goroutine and returns a future
// that resolves when fn has run. With no active worker the future resolves
// with an error instead.
func (h *SinkHandle[T]) Call(fn func(T)) *Future[struct{}] {
	return spawnTask(h.worker.bg.Load(), func() (struct{}, error) {
		fn(h.sink)
		return struct{}{}, nil
	})
}

// CallSink runs fn against the handle's sink on the worker goroutine and
// returns its result through a future. A free function because Go methods
// cannot introduce the result type parameter.
func CallSink[T Sink, R any](h *SinkHandle[T], fn func(T) R) *Future[R] {
	return spawnTask(h.worker.bg.Load(), func() (R, error) {
		return fn(h.sink), nil
	})
}

// Close schedules removal and destruction of the sink on the worker
// goroutine. Records already queued ahead of the removal are still
// delivered to the sink.
func (h *SinkHandle[T]) Close() {
	sw := h.wrapper
	spawnTask(h.worker.bg.Load(), func() (struct{}, error) {
		sinks := h.worker.sinks[:0]
		for _, cur := range h.worker.sinks {
			if cur != sw {
				sinks = append(sinks, cur)
			}
		}
		h.worker.sinks = sinks
		sw.close()
		return struct{}{}, nil
	}).Wait()
}
