// Package logging configures the process-wide logger to write to stdout and
// append to a debug log file.
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

// Setup directs the standard logger to stdout and, when it can be opened,
// the debug log at path. The returned closer releases the file; it is safe
// to call when no file was opened.
func Setup(path string) io.Closer {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if path == "" {
		log.SetOutput(os.Stdout)
		return io.NopCloser(nil)
	}

	if dir := filepath.Dir(path); dir != "" {
		_ = os.MkdirAll(dir, 0755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		log.SetOutput(os.Stdout)
		log.Printf("[WARN] open debug log %s: %v, logging to stdout only", path, err)
		return io.NopCloser(nil)
	}
	log.SetOutput(io.MultiWriter(os.Stdout, f))
	return f
}
