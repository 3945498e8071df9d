// Copyright 2026 seqgen project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package testutil

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/isagen/seqgen/pkg/catalog"
)

func IterCount() int {
	iters := 1000
	if testing.Short() {
		iters /= 10
	}
	return iters
}

// RandSource returns a time-seeded source, the seed is logged and can be
// fixed with SEQGEN_SEED env var to reproduce failures.
func RandSource(t testing.TB) rand.Source {
	seed := time.Now().UnixNano()
	if fixed := os.Getenv("SEQGEN_SEED"); fixed != "" {
		seed, _ = strconv.ParseInt(fixed, 0, 64)
	}
	if os.Getenv("CI") != "" {
		seed = 0 // required for deterministic coverage reports
	}
	t.Logf("seed=%v", seed)
	return rand.NewSource(seed)
}

// RandGroup creates a group with 1-16 entries with random weights in [0, 100),
// at least one of the weights is positive.
func RandGroup(r *rand.Rand, name string) *catalog.Group {
	n := 1 + r.Intn(16)
	var entries []catalog.Entry
	for i := 0; i < n; i++ {
		entries = append(entries, catalog.Entry{
			Name:   fmt.Sprintf("%v_INSN%v", name, i),
			Weight: uint64(r.Intn(100)),
		})
	}
	entries[r.Intn(n)].Weight++
	return catalog.NewGroup(name, entries...)
}
