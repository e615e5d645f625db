package log

import (
	"io"
	"log"
	"os"
)

// TeeFile copies log output to path as well as stdout. A file that cannot be
// opened is reported and logging stays on stdout.
func TeeFile(path string) io.Closer {
	if path == "" {
		return io.NopCloser(nil)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("[warn] could not open log file %s: %v", path, err)
		return io.NopCloser(nil)
	}
	log.SetOutput(io.MultiWriter(os.Stdout, f))
	return f
}
