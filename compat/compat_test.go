// FILE: compat/compat_test.go
package compat

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glintlog/glint"
)

type memorySink struct {
	mu      sync.Mutex
	records []*glint.Record
}

func (s *memorySink) Receive(r *glint.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
}

func (s *memorySink) bodies() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.records))
	for i, r := range s.records {
		out[i] = r.Message()
	}
	return out
}

func (s *memorySink) levels() []glint.Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]glint.Level, len(s.records))
	for i, r := range s.records {
		out[i] = r.Level
	}
	return out
}

func setup(t *testing.T) (*glint.Worker, *memorySink) {
	t.Helper()
	w := glint.NewWorker()
	s := &memorySink{}
	glint.AddSink(w, s)
	glint.Initialize(w)
	t.Cleanup(w.Close)
	return w, s
}

func TestGnetAdapterLevels(t *testing.T) {
	w, sink := setup(t)

	a := NewGnetAdapter()
	a.Debugf("loop %d ready", 1)
	a.Infof("listening on %s", ":9000")
	a.Warnf("slow handler")
	a.Errorf("accept failed: %v", "EMFILE")
	require.NoError(t, w.Sync())

	bodies := sink.bodies()
	require.Len(t, bodies, 4)
	assert.Equal(t, "gnet: loop 1 ready", bodies[0])
	assert.Equal(t, "gnet: listening on :9000", bodies[1])
	assert.Equal(t,
		[]glint.Level{glint.DEBUG, glint.INFO, glint.WARNING, glint.ERROR},
		sink.levels())
}

func TestGnetAdapterFatalHandler(t *testing.T) {
	w, sink := setup(t)

	var fatalMsg string
	a := NewGnetAdapter(WithFatalHandler(func(msg string) {
		fatalMsg = msg
	}))
	a.Fatalf("unrecoverable: %d", 9)
	require.NoError(t, w.Sync())

	assert.Equal(t, "gnet: unrecoverable: 9", fatalMsg)
	assert.Empty(t, sink.bodies(), "the custom handler owns fatal routing")
}

func TestFastHTTPAdapterDetection(t *testing.T) {
	w, sink := setup(t)

	a := NewFastHTTPAdapter()
	a.Printf("error when serving connection %s", "1.2.3.4")
	a.Printf("connection deprecated header")
	a.Printf("debug dump follows")
	a.Printf("plain message")
	require.NoError(t, w.Sync())

	assert.Equal(t,
		[]glint.Level{glint.ERROR, glint.WARNING, glint.DEBUG, glint.INFO},
		sink.levels())
	assert.Contains(t, sink.bodies()[3], "fasthttp: plain message")
}

func TestFastHTTPAdapterDefaultLevel(t *testing.T) {
	w, sink := setup(t)

	a := NewFastHTTPAdapter(
		WithDefaultLevel(glint.WARNING),
		WithLevelDetector(nil),
	)
	a.Printf("anything at all")
	require.NoError(t, w.Sync())

	require.Len(t, sink.bodies(), 1)
	assert.Equal(t, glint.WARNING, sink.levels()[0])
}
