// Copyright 2026 seqgen project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package tool contains helpers for command line tools.
package tool

import (
	"flag"
	"fmt"
	"os"
)

// Init parses command line flags and starts profiling if requested by
// -cpuprofile/-memprofile. The returned function must be called before exit.
func Init() func() {
	cpuprof := flag.String("cpuprofile", "", "write CPU profile to this file")
	memprof := flag.String("memprofile", "", "write memory profile to this file")
	flag.Parse()
	return installProfiling(*cpuprof, *memprof)
}

func Failf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg+"\n", args...)
	os.Exit(1)
}

func Fail(err error) {
	Failf("%v", err)
}
