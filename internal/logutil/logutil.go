// Package logutil hands out package loggers that share one switchable output.
// Nothing is written until SetOutput or SetOutputFile is called, so a full
// screen UI never has log lines scribbled over it.
package logutil

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	out     io.Writer = io.Discard
	closer  io.Closer
	loggers []*log.Logger
)

// GetLogger returns a logger with the given prefix writing to the shared
// output.
func GetLogger(prefix string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	l := log.New(out, prefix, log.Lmicroseconds)
	loggers = append(loggers, l)
	return l
}

// SetOutput redirects every logger to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	setOutput(w, nil)
}

// SetOutputFile redirects every logger to the named file, appending to it.
// An empty name restores the discarding default.
func SetOutputFile(name string) error {
	if name == "" {
		SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	mu.Lock()
	defer mu.Unlock()
	setOutput(f, f)
	return nil
}

func setOutput(w io.Writer, c io.Closer) {
	if closer != nil {
		closer.Close()
	}
	out, closer = w, c
	for _, l := range loggers {
		l.SetOutput(w)
	}
}
