// Copyright 2026 seqgen project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package mgrconfig

import (
	"fmt"

	"github.com/isagen/seqgen/pkg/catalog"
	"github.com/isagen/seqgen/pkg/config"
	"github.com/isagen/seqgen/pkg/program"
	"github.com/isagen/seqgen/pkg/sequence"
)

const TargetRISCV = "riscv"

func LoadData(data []byte) (*Config, error) {
	cfg := DefaultValues()
	if err := config.LoadData(data, cfg); err != nil {
		return nil, err
	}
	if err := Complete(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadFile(filename string) (*Config, error) {
	cfg := DefaultValues()
	if err := config.LoadFile(filename, cfg); err != nil {
		return nil, err
	}
	if err := Complete(cfg); err != nil {
		return nil, fmt.Errorf("%v: %w", filename, err)
	}
	return cfg, nil
}

func DefaultValues() *Config {
	return &Config{
		Target:   TargetRISCV,
		Groups32: []string{"RV32F"},
		Groups64: []string{"RV64F"},
		Sequence: sequence.TypeRandom,
		Backend:  program.TypeText,
		Programs: 1,
	}
}

// Complete checks static parts of the config. Run parameters (instruction count,
// register width) are checked by the sequence when the run starts.
func Complete(cfg *Config) error {
	if cfg.Target != TargetRISCV {
		return fmt.Errorf("unsupported target %q", cfg.Target)
	}
	if sequence.Types[cfg.Sequence] == nil {
		return fmt.Errorf("unknown sequence %q, supported: %v", cfg.Sequence, sequence.SupportedTypes())
	}
	if program.Types[cfg.Backend] == nil {
		return fmt.Errorf("unknown backend %q, supported: %v", cfg.Backend, program.SupportedTypes())
	}
	if cfg.Programs < 1 {
		return fmt.Errorf("programs must be positive, got %v", cfg.Programs)
	}
	if cfg.Capacity < 0 {
		return fmt.Errorf("capacity must not be negative, got %v", cfg.Capacity)
	}
	if len(cfg.Groups32) == 0 || len(cfg.Groups64) == 0 {
		return fmt.Errorf("groups32/groups64 must not be empty")
	}
	if cfg.Instruction != "" {
		if val, ok := cfg.Options[sequence.OptionInstruction]; ok && val != cfg.Instruction {
			return fmt.Errorf("instruction %q conflicts with option %v=%q",
				cfg.Instruction, sequence.OptionInstruction, val)
		}
	}
	return nil
}

// Catalog returns the built-in catalog extended with the configured catalog files.
func (cfg *Config) Catalog() (*catalog.Catalog, error) {
	cat := catalog.Default()
	for _, file := range cfg.Catalogs {
		if err := cat.LoadFile(file); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

// RunConfig creates the immutable per-run configuration.
func (cfg *Config) RunConfig(cat *catalog.Catalog) (*sequence.RunConfig, error) {
	group32, err := cat.Resolve(cfg.Groups32...)
	if err != nil {
		return nil, fmt.Errorf("%w: groups32: %w", sequence.ErrConfig, err)
	}
	group64, err := cat.Resolve(cfg.Groups64...)
	if err != nil {
		return nil, fmt.Errorf("%w: groups64: %w", sequence.ErrConfig, err)
	}
	options := make(map[string]string)
	for k, v := range cfg.Options {
		options[k] = v
	}
	if cfg.Instruction != "" {
		options[sequence.OptionInstruction] = cfg.Instruction
	}
	globals := make(map[string]int)
	if cfg.AppRegisterWidth != nil {
		globals[sequence.GlobalRegisterWidth] = *cfg.AppRegisterWidth
	}
	return sequence.NewRunConfig(options, globals, group32, group64), nil
}
