// Copyright 2026 seqgen project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package harness instantiates the configured sequence and backend types
// and generates test programs. Every program is generated in an isolated
// environment: own backend, own program and own random source.
package harness

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/isagen/seqgen/pkg/catalog"
	"github.com/isagen/seqgen/pkg/choice"
	"github.com/isagen/seqgen/pkg/log"
	"github.com/isagen/seqgen/pkg/mgrconfig"
	"github.com/isagen/seqgen/pkg/program"
	"github.com/isagen/seqgen/pkg/sequence"
	"github.com/isagen/seqgen/pkg/stat"
)

var (
	statPrograms = stat.New("programs", "Successfully generated programs",
		stat.Prometheus("seqgen_programs"))
	statFailed = stat.New("failed runs", "Generation runs aborted with an error",
		stat.Prometheus("seqgen_failed_runs"))
	statInstructions = stat.New("instructions", "Instructions submitted to generation backends",
		stat.Rate{}, stat.Prometheus("seqgen_instructions"))
	statProgramLen = stat.New("program length", "Instructions per generated program",
		stat.Distribution{})
	statRunTime = stat.New("run time", "Duration of a generation run (us)",
		stat.Distribution{})
)

type Harness struct {
	cfg    *mgrconfig.Config
	cat    *catalog.Catalog
	runCfg *sequence.RunConfig
}

// Result is the outcome of one run. Program is set even if the run failed,
// then it contains instructions generated before the failure.
type Result struct {
	Index   int
	Seed    int64
	Program *program.Program
	Err     error
}

func New(cfg *mgrconfig.Config) (*Harness, error) {
	cat, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}
	runCfg, err := cfg.RunConfig(cat)
	if err != nil {
		return nil, err
	}
	return &Harness{
		cfg:    cfg,
		cat:    cat,
		runCfg: runCfg,
	}, nil
}

func (h *Harness) Catalog() *catalog.Catalog {
	return h.cat
}

// Generate performs a single run with a random source seeded with seed.
func (h *Harness) Generate(index int, seed int64) *Result {
	res := &Result{Index: index, Seed: seed}
	backend, err := program.NewBackend(h.cfg.Backend, &program.Env{
		Catalog:  h.cat,
		Capacity: h.cfg.Capacity,
	})
	if err != nil {
		h.fail(res, err, 0)
		return res
	}
	res.Program = backend.Program()
	h.annotate(res)
	counter := &countingBackend{Backend: backend}
	seq, err := sequence.New(h.cfg.Sequence, &sequence.Env{
		Config:  h.runCfg,
		Picker:  choice.NewPicker(rand.New(rand.NewSource(seed))),
		Backend: counter,
	})
	if err != nil {
		h.fail(res, err, 0)
		return res
	}
	start := time.Now()
	err = seq.Run()
	statRunTime.Add(int(time.Since(start) / time.Microsecond))
	statInstructions.Add(counter.submitted)
	if err != nil {
		h.fail(res, err, counter.submitted)
		return res
	}
	statPrograms.Add(1)
	statProgramLen.Add(counter.submitted)
	log.Logf(1, "program %v (seed %v): %v instructions", index, seed, counter.submitted)
	return res
}

func (h *Harness) fail(res *Result, err error, submitted int) {
	res.Err = err
	statFailed.Add(1)
	if res.Program != nil {
		res.Program.SetAttr("error", err)
	}
	log.Logf(0, "program %v (seed %v) failed after %v instructions: %v",
		res.Index, res.Seed, submitted, err)
}

func (h *Harness) annotate(res *Result) {
	p := res.Program
	if h.cfg.Name != "" {
		p.SetAttr("name", h.cfg.Name)
	}
	p.SetAttr("target", h.cfg.Target)
	p.SetAttr("sequence", h.cfg.Sequence)
	p.SetAttr("seed", res.Seed)
	if width, ok := h.runCfg.GlobalState(sequence.GlobalRegisterWidth); ok {
		p.SetAttr("width", width)
	}
	if g, err := h.runCfg.ActiveGroup(); err == nil {
		p.SetAttr("group", g.Name)
	}
}

// GenerateAll generates cfg.Programs programs in parallel, program i uses seed+i.
// Runs that haven't started yet are skipped after the first failure
// or when ctx is cancelled, a started run always completes.
// Returned results are ordered by index, skipped runs are nil.
func (h *Harness) GenerateAll(ctx context.Context, seed int64) ([]*Result, error) {
	results := make([]*Result, h.cfg.Programs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range results {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := h.Generate(i, seed+int64(i))
			results[i] = res
			if res.Err != nil {
				return fmt.Errorf("program %v: %w", i, res.Err)
			}
			return nil
		})
	}
	err := g.Wait()
	return results, err
}

// countingBackend counts successful submissions of a run.
type countingBackend struct {
	program.Backend
	submitted int
}

func (b *countingBackend) GenInstruction(insn string) (sequence.RecordID, error) {
	id, err := b.Backend.GenInstruction(insn)
	if err == nil {
		b.submitted++
	}
	return id, err
}
