// FILE: utility.go
package glint

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"strings"
)

// fmtErrorf wrapper, keeps every framework error under the "glint: " prefix
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "glint: ") {
		format = "glint: " + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}

// internalLog writes framework diagnostics to stderr with a consistent prefix.
func internalLog(format string, args ...any) {
	if !strings.HasPrefix(format, "glint: ") {
		format = "glint: " + format
	}
	fmt.Fprintf(os.Stderr, format, args...)
}

// goroutineID returns the current goroutine's numeric id as an opaque string.
// The runtime does not expose ids directly; the stack header
// ("goroutine 123 [running]:") is the stable way to read one.
func goroutineID() string {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := bytes.Fields(buf[:n])
	if len(fields) >= 2 {
		return string(fields[1])
	}
	return "?"
}

// funcBase shortens a runtime function name like
// "github.com/glintlog/glint.(*Capture).Close" to "glint.(*Capture).Close".
func funcBase(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// parseKeyValue splits a "key=value" override string.
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", fmtErrorf("invalid format in override string '%s', expected key=value", arg)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", fmtErrorf("key cannot be empty in override string '%s'", arg)
	}
	return key, value, nil
}
