// Copyright 2026 seqgen project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package log is a small wrapper around the standard log package with:
//   - verbosity levels controlled by the -vv flag or SetVerbosity
//   - an optional in-memory ring of recent messages, so that a failed
//     generation run can report what happened before the failure
package log

import (
	"flag"
	"fmt"
	golog "log"
	"strings"
	"sync"
	"time"
)

var (
	flagV       = flag.Int("vv", 0, "verbosity")
	mu          sync.Mutex
	verbosity   *int = flagV
	recent      *ring
	prependTime = true // for testing
)

// SetVerbosity overrides the -vv flag value.
func SetVerbosity(v int) {
	mu.Lock()
	defer mu.Unlock()
	verbosity = &v
}

func V(v int) bool {
	mu.Lock()
	defer mu.Unlock()
	return v <= *verbosity
}

// EnableLogCaching starts caching messages with verbosity <= 1 in memory.
// Up to maxLines messages are kept, but no more than maxMem bytes in total.
func EnableLogCaching(maxLines, maxMem int) {
	mu.Lock()
	defer mu.Unlock()
	if recent != nil {
		Fatalf("log caching is already enabled")
	}
	if maxLines < 1 || maxMem < 1 {
		panic("invalid maxLines/maxMem")
	}
	recent = &ring{
		maxMem:  maxMem,
		entries: make([]string, maxLines),
	}
}

// CachedLogOutput returns the cached messages, oldest first.
func CachedLogOutput() string {
	mu.Lock()
	defer mu.Unlock()
	if recent == nil {
		return ""
	}
	return recent.String()
}

func Logf(v int, msg string, args ...any) {
	mu.Lock()
	doLog := v <= *verbosity
	if recent != nil && v <= 1 {
		timeStr := ""
		if prependTime {
			timeStr = time.Now().Format("2006/01/02 15:04:05 ")
		}
		recent.add(timeStr + fmt.Sprintf(msg, args...))
	}
	mu.Unlock()

	if doLog {
		golog.Printf(msg, args...)
	}
}

func Fatal(err error) {
	golog.Fatal(err)
}

func Fatalf(msg string, args ...any) {
	golog.Fatalf(msg, args...)
}

type ring struct {
	mem     int
	maxMem  int
	pos     int
	entries []string
}

func (r *ring) add(entry string) {
	r.mem -= len(r.entries[r.pos])
	r.entries[r.pos] = entry
	r.mem += len(entry)
	r.pos = (r.pos + 1) % len(r.entries)
	// Drop the oldest entries until we fit into the memory limit,
	// but always keep the newest one.
	for i := 0; i < len(r.entries)-1 && r.mem > r.maxMem; i++ {
		pos := (r.pos + i) % len(r.entries)
		r.mem -= len(r.entries[pos])
		r.entries[pos] = ""
	}
	if r.mem < 0 {
		panic("log cache size underflow")
	}
}

func (r *ring) String() string {
	buf := new(strings.Builder)
	for i := range r.entries {
		entry := r.entries[(r.pos+i)%len(r.entries)]
		if entry == "" {
			continue
		}
		buf.WriteString(entry)
		buf.WriteByte('\n')
	}
	return buf.String()
}
