// FILE: filesink.go
package glint

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glintlog/glint/sanitizer"
)

// FileSink is the default sink: one log file opened truncating, with a
// format header and a "<module>.log" symlink pointing at the current file.
// All writes happen on the worker goroutine; write failures are this sink's
// concern and are not surfaced to the framework.
type FileSink struct {
	file     *os.File
	fileName string
	writes   uint64
	failures uint64
}

const fileNameTimeLayout = "20060102-150405"

// NewFileSink opens a log file in directory named
// <prefix>[.<loggerID>].YYYYMMDD-HHMMSS.log after sanitizing the prefix.
// An existing file of the same name is truncated.
func NewFileSink(prefix, directory, loggerID string) (*FileSink, error) {
	cleaned, err := sanitizer.CheckFilenamePrefix(prefix)
	if err != nil {
		return nil, fmtErrorf("invalid file sink prefix: %w", err)
	}

	name := cleaned
	if loggerID != "" {
		name += "." + loggerID
	}
	name += "." + time.Now().Format(fileNameTimeLayout) + ".log"

	path := filepath.Join(directory, name)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmtErrorf("cannot open log file %s: %w", path, err)
	}

	s := &FileSink{file: f, fileName: path}
	s.writeHeader()
	s.createLinks(cleaned, directory, name)
	return s, nil
}

func (s *FileSink) writeHeader() {
	fmt.Fprintf(s.file,
		"\t\tglint created log at: %s\n"+
			"\t\tLOG format: [YYYY/MM/DD hh:mm:ss uuu* LEVEL FILE->FUNCTION:LINE] message\n"+
			"\t\t(uuu*: microseconds fractions of the seconds value)\n\n",
		time.Now().Format(time.ANSIC))
}

// createLinks maintains <module>.log in the log directory, and in the
// configured log_link directory if one is set. Symlink failures (e.g. on
// filesystems without symlink support) are ignored.
func (s *FileSink) createLinks(prefix, directory, name string) {
	linkBase := prefix
	if i := strings.IndexByte(prefix, '.'); i > 0 {
		linkBase = prefix[:i]
	}
	linkName := linkBase + ".log"

	makeLink := func(dir, target string) {
		link := filepath.Join(dir, linkName)
		_ = os.Remove(link)
		_ = os.Symlink(target, link)
	}

	makeLink(directory, name)
	if extra := currentConfig().LogLink; extra != "" {
		// A bare file name would resolve inside the extra directory.
		target := s.fileName
		if abs, err := filepath.Abs(target); err == nil {
			target = abs
		}
		makeLink(extra, target)
	}
}

// Receive writes the rendered record followed by a newline.
func (s *FileSink) Receive(r *Record) {
	if s.file == nil {
		return
	}
	if _, err := fmt.Fprintln(s.file, r.String()); err != nil {
		s.failures++
		return
	}
	s.writes++
}

// FileName returns the path of the open log file.
func (s *FileSink) FileName() string {
	return s.fileName
}

// Writes returns how many records reached the file.
func (s *FileSink) Writes() uint64 {
	return s.writes
}

// Flush forces file content to disk.
func (s *FileSink) Flush() error {
	if s.file == nil {
		return nil
	}
	return s.file.Sync()
}

// Close syncs and closes the file. Called by the worker when the sink is
// removed or the registry is cleared.
func (s *FileSink) Close() error {
	if s.file == nil {
		return nil
	}
	err := combineErrors(s.file.Sync(), s.file.Close())
	s.file = nil
	return err
}

// DefaultLogPrefix synthesizes the conventional prefix
// basename(argv0).hostname.username for the default file sink.
func DefaultLogPrefix(argv0 string) string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "(unknown)"
	}
	user := os.Getenv("USER")
	if user == "" {
		user = "invalid-user"
	}
	return filepath.Base(argv0) + "." + host + "." + user
}

// AddDefaultLogger registers a default file sink on w, writing under
// directory (the configured log_dir when empty) with an optional logger id
// distinguishing multiple sinks of one process.
func AddDefaultLogger(w *Worker, argv0, directory, loggerID string) (*SinkHandle[*FileSink], error) {
	if directory == "" {
		directory = currentConfig().LogDir
	}
	fs, err := NewFileSink(DefaultLogPrefix(argv0), directory, loggerID)
	if err != nil {
		return nil, err
	}
	return AddSink(w, fs), nil
}
