// FILE: filesink_test.go
package glint

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileSinkCreatesFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileSink("server.host1.alice", dir, "")
	require.NoError(t, err)
	defer s.Close()

	re := regexp.MustCompile(`server\.host1\.alice\.\d{8}-\d{6}\.log$`)
	assert.Regexp(t, re, s.FileName())

	data, err := os.ReadFile(s.FileName())
	require.NoError(t, err)
	header := string(data)
	assert.Contains(t, header, "glint created log at:")
	assert.Contains(t, header, "LOG format: [YYYY/MM/DD hh:mm:ss uuu* LEVEL FILE->FUNCTION:LINE] message")
	assert.Contains(t, header, "(uuu*: microseconds fractions of the seconds value)")
}

func TestNewFileSinkWithLoggerID(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileSink("app.h.u", dir, "worker7")
	require.NoError(t, err)
	defer s.Close()

	assert.Regexp(t, regexp.MustCompile(`app\.h\.u\.worker7\.\d{8}-\d{6}\.log$`), s.FileName())
}

// TestFileSinkSymlink verifies the <module>.log link points at the current
// file.
func TestFileSinkSymlink(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileSink("server.host1.alice", dir, "")
	require.NoError(t, err)
	defer s.Close()

	link := filepath.Join(dir, "server.log")
	target, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(s.FileName()), target)
}

func TestFileSinkLogLink(t *testing.T) {
	resetLogging(t)
	extra := t.TempDir()
	cfg := DefaultConfig()
	cfg.LogLink = extra
	require.NoError(t, ApplyConfig(cfg))

	dir := t.TempDir()
	s, err := NewFileSink("app.h.u", dir, "")
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Readlink(filepath.Join(extra, "app.log"))
	assert.NoError(t, err)
}

// TestFileSinkPrefixSanitization verifies whitespace, separators and colons
// are stripped; an empty or still-illegal prefix is rejected.
func TestFileSinkPrefixSanitization(t *testing.T) {
	dir := t.TempDir()

	s, err := NewFileSink("my app/v1:beta.host.user", dir, "")
	require.NoError(t, err)
	defer s.Close()
	assert.Contains(t, filepath.Base(s.FileName()), "myappv1beta.host.user")

	_, err = NewFileSink("   ", dir, "")
	assert.Error(t, err)

	_, err = NewFileSink("bad#name", dir, "")
	assert.Error(t, err)
}

// TestFileSinkReceive verifies rendered records land in the file.
func TestFileSinkReceive(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileSink("app.h.u", dir, "")
	require.NoError(t, err)

	r := newRecord("a.go", 1, "f", INFO)
	r.WriteString("to disk")
	s.Receive(r)
	require.NoError(t, s.Close())

	data, err := os.ReadFile(s.FileName())
	require.NoError(t, err)
	assert.Contains(t, string(data), "to disk")
	assert.Contains(t, string(data), "INFO")
}

func TestDefaultLogPrefix(t *testing.T) {
	prefix := DefaultLogPrefix("/usr/bin/server")
	parts := strings.Split(prefix, ".")
	require.GreaterOrEqual(t, len(parts), 3)
	assert.Equal(t, "server", parts[0])
}

// TestAddDefaultLogger verifies the end-to-end default sink path.
func TestAddDefaultLogger(t *testing.T) {
	resetLogging(t)
	dir := t.TempDir()

	w := NewWorker()
	h, err := AddDefaultLogger(w, "testprog", dir, "")
	require.NoError(t, err)
	Initialize(w)

	Info("file bound record")
	require.NoError(t, w.Sync())

	name, err := CallSink(h, func(s *FileSink) string { return s.FileName() }).Result()
	require.NoError(t, err)

	w.Close()

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(data), "file bound record")
}
