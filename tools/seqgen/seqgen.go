// Copyright 2026 seqgen project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// seqgen generates random instruction sequences and prints or saves the resulting programs.
// All flags except -config override the corresponding config values, e.g.:
//
//	seqgen -width 64 -groups RV64F+RV_A -count 500 -seed 1
//	seqgen -config basic_fpu.cfg -programs 16 -out progs -compress
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/isagen/seqgen/pkg/catalog"
	"github.com/isagen/seqgen/pkg/harness"
	"github.com/isagen/seqgen/pkg/log"
	"github.com/isagen/seqgen/pkg/mgrconfig"
	"github.com/isagen/seqgen/pkg/sequence"
	"github.com/isagen/seqgen/pkg/stat"
	"github.com/isagen/seqgen/pkg/tool"
)

var (
	flagConfig      = flag.String("config", "", "generator config file (JSON or YAML)")
	flagSeed        = flag.Int64("seed", 0, "prng seed of the first program (time-based if not set)")
	flagCount       = flag.String("count", "", "number of instructions per program (instruction_count option)")
	flagWidth       = flag.Int("width", 0, "target register width (32 or 64)")
	flagGroups      = flag.String("groups", "", "instruction groups for the target width, e.g. RV64F+RV_A")
	flagSequence    = flag.String("sequence", "", "sequence type ("+strings.Join(sequence.SupportedTypes(), ", ")+")")
	flagInstruction = flag.String("instruction", "", "instruction for the single sequence")
	flagPrograms    = flag.Int("programs", 0, "number of programs to generate")
	flagOut         = flag.String("out", "", "output file or directory (stdout if not set)")
	flagCompress    = flag.Bool("compress", false, "xz-compress output files")
	flagMetrics     = flag.String("metrics", "", "write Prometheus metrics to the file after generation")
	flagList        = flag.Bool("list", false, "list instruction groups and exit")
	flagCatalogs    tool.ListFlag
)

func init() {
	flag.Var(&flagCatalogs, "catalog", "comma-separated list of additional catalog files")
}

func main() {
	defer tool.Init()()
	cfg, err := loadConfig()
	if err != nil {
		tool.Fail(err)
	}
	if *flagList {
		listGroups(cfg)
		return
	}
	h, err := harness.New(cfg)
	if err != nil {
		tool.Fail(err)
	}
	seed := time.Now().UnixNano()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	log.EnableLogCaching(1000, 1<<20)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	results, genErr := h.GenerateAll(ctx, seed)
	if err := h.WriteResults(results, os.Stdout); err != nil {
		tool.Failf("failed to write programs: %v", err)
	}
	for _, st := range stat.Collect() {
		log.Logf(1, "%-16v: %v", st.Name, st.Value)
	}
	if *flagMetrics != "" {
		if err := stat.WriteTextfile(*flagMetrics); err != nil {
			tool.Failf("failed to write metrics: %v", err)
		}
	}
	if genErr != nil {
		fmt.Fprintf(os.Stderr, "recent log:\n%s", log.CachedLogOutput())
		tool.Failf("generation failed (seed %v): %v", seed, genErr)
	}
}

func loadConfig() (*mgrconfig.Config, error) {
	cfg := mgrconfig.DefaultValues()
	if *flagConfig != "" {
		var err error
		if cfg, err = mgrconfig.LoadFile(*flagConfig); err != nil {
			return nil, err
		}
	}
	if tool.IsSet(flag.CommandLine, "seed") {
		cfg.Seed = flagSeed
	}
	if *flagCount != "" {
		options := map[string]string{sequence.OptionInstructionCount: *flagCount}
		for k, v := range cfg.Options {
			if k != sequence.OptionInstructionCount {
				options[k] = v
			}
		}
		cfg.Options = options
	}
	if *flagWidth != 0 {
		cfg.AppRegisterWidth = flagWidth
	}
	if *flagGroups != "" {
		// The flag applies to the configured (or given) width only.
		width := 0
		if cfg.AppRegisterWidth != nil {
			width = *cfg.AppRegisterWidth
		}
		switch width {
		case 32:
			cfg.Groups32 = []string{*flagGroups}
		case 64:
			cfg.Groups64 = []string{*flagGroups}
		default:
			return nil, fmt.Errorf("-groups requires register width 32 or 64, have %v", width)
		}
	}
	if *flagSequence != "" {
		cfg.Sequence = *flagSequence
	}
	if *flagInstruction != "" {
		cfg.Instruction = *flagInstruction
	}
	if *flagPrograms != 0 {
		cfg.Programs = *flagPrograms
	}
	if *flagOut != "" {
		cfg.Output = *flagOut
	}
	if *flagCompress {
		cfg.Compress = true
	}
	cfg.Catalogs = append(cfg.Catalogs, flagCatalogs...)
	if err := mgrconfig.Complete(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func listGroups(cfg *mgrconfig.Config) {
	cat, err := cfg.Catalog()
	if err != nil {
		tool.Fail(err)
	}
	for _, name := range cat.Groups() {
		g, err := cat.Group(name)
		if err != nil {
			tool.Fail(err)
		}
		fmt.Printf("%-14v %4v instructions, total weight %v\n", name, len(g.Entries), g.TotalWeight())
		if log.V(1) {
			printEntries(g)
		}
	}
}

func printEntries(g *catalog.Group) {
	for _, e := range g.Entries {
		fmt.Printf("\t%-24v %v\n", e.Name, e.Weight)
	}
}
