// Copyright 2026 seqgen project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package sequence implements the generation control loop: it resolves the run
// parameters from an immutable run configuration and then repeatedly draws
// an instruction from the active group and submits it to a generation backend.
package sequence

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/isagen/seqgen/pkg/catalog"
	"github.com/isagen/seqgen/pkg/log"
)

const (
	// OptionInstructionCount overrides the number of generated instructions.
	OptionInstructionCount = "instruction_count"
	// OptionInstruction names the instruction generated by the "single" sequence.
	OptionInstruction = "instruction"
	// GlobalRegisterWidth is the register width of the target in bits (32 or 64).
	GlobalRegisterWidth = "AppRegisterWidth"

	DefaultInstructionCount = 100
)

// ErrConfig is returned when the run configuration can't drive generation.
// It is always returned before the first instruction is submitted.
var ErrConfig = errors.New("bad run configuration")

// RecordID identifies an instruction generated by a backend.
type RecordID uint64

// Backend materializes instructions into the in-progress test program.
// It is called sequentially, the next call starts only after the previous one returns.
type Backend interface {
	GenInstruction(insn string) (RecordID, error)
}

// Picker performs a weighted draw from a group.
type Picker interface {
	PickWeighted(g *catalog.Group) (string, error)
}

// Sequence is a single generation run.
type Sequence interface {
	Run() error
}

// RunConfig holds options and global facts of a run plus the candidate groups
// for 32 and 64-bit targets. It is not modified after construction.
type RunConfig struct {
	options map[string]string
	globals map[string]int
	group32 *catalog.Group
	group64 *catalog.Group
}

func NewRunConfig(options map[string]string, globals map[string]int, group32, group64 *catalog.Group) *RunConfig {
	cfg := &RunConfig{
		options: make(map[string]string),
		globals: make(map[string]int),
		group32: group32,
		group64: group64,
	}
	for k, v := range options {
		cfg.options[k] = v
	}
	for k, v := range globals {
		cfg.globals[k] = v
	}
	return cfg
}

// Option returns value of a run option and whether it was set.
func (cfg *RunConfig) Option(name string) (string, bool) {
	v, ok := cfg.options[name]
	return v, ok
}

func (cfg *RunConfig) GlobalState(name string) (int, bool) {
	v, ok := cfg.globals[name]
	return v, ok
}

// InstructionCount returns the number of instructions to generate.
func (cfg *RunConfig) InstructionCount() (int, error) {
	val, ok := cfg.Option(OptionInstructionCount)
	if !ok {
		return DefaultInstructionCount, nil
	}
	count, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil || count <= 0 {
		return 0, fmt.Errorf("%w: %v=%q is not a positive integer", ErrConfig, OptionInstructionCount, val)
	}
	return count, nil
}

// ActiveGroup returns the candidate group for the target register width.
func (cfg *RunConfig) ActiveGroup() (*catalog.Group, error) {
	width, ok := cfg.GlobalState(GlobalRegisterWidth)
	if !ok {
		return nil, fmt.Errorf("%w: %v is not set", ErrConfig, GlobalRegisterWidth)
	}
	var g *catalog.Group
	switch width {
	case 32:
		g = cfg.group32
	case 64:
		g = cfg.group64
	default:
		return nil, fmt.Errorf("%w: unsupported %v=%v", ErrConfig, GlobalRegisterWidth, width)
	}
	if g == nil {
		return nil, fmt.Errorf("%w: no instruction group for %v-bit target", ErrConfig, width)
	}
	return g, nil
}

// Env is everything a sequence needs. A sequence gets exclusive use
// of the backend and the picker for the duration of the run.
type Env struct {
	Config  *RunConfig
	Picker  Picker
	Backend Backend
}

func (env *Env) validate() error {
	if env == nil || env.Config == nil || env.Picker == nil || env.Backend == nil {
		return fmt.Errorf("incomplete sequence environment")
	}
	return nil
}

// randomSequence generates instructions randomly selected from the active group.
type randomSequence struct {
	env *Env
}

func newRandom(env *Env) (Sequence, error) {
	return &randomSequence{env: env}, nil
}

func (seq *randomSequence) Run() error {
	cfg := seq.env.Config
	count, err := cfg.InstructionCount()
	if err != nil {
		return err
	}
	group, err := cfg.ActiveGroup()
	if err != nil {
		return err
	}
	log.Logf(1, "generating %v instructions from %v", count, group)
	for i := 0; i < count; i++ {
		insn, err := seq.env.Picker.PickWeighted(group)
		if err != nil {
			return fmt.Errorf("instruction %v: %w", i, err)
		}
		if err := generate(seq.env.Backend, i, insn); err != nil {
			return err
		}
	}
	return nil
}

// singleSequence generates the same instruction on every iteration.
type singleSequence struct {
	env *Env
}

func newSingle(env *Env) (Sequence, error) {
	return &singleSequence{env: env}, nil
}

func (seq *singleSequence) Run() error {
	cfg := seq.env.Config
	count, err := cfg.InstructionCount()
	if err != nil {
		return err
	}
	group, err := cfg.ActiveGroup()
	if err != nil {
		return err
	}
	insn, ok := cfg.Option(OptionInstruction)
	if !ok || insn == "" {
		return fmt.Errorf("%w: %v is not set", ErrConfig, OptionInstruction)
	}
	if !group.Contains(insn) {
		return fmt.Errorf("%w: %v is not in %v", ErrConfig, insn, group.Name)
	}
	log.Logf(1, "generating %v instructions %v", count, insn)
	for i := 0; i < count; i++ {
		if err := generate(seq.env.Backend, i, insn); err != nil {
			return err
		}
	}
	return nil
}

func generate(backend Backend, i int, insn string) error {
	id, err := backend.GenInstruction(insn)
	if err != nil {
		return fmt.Errorf("failed to generate instruction %v (%v): %w", i, insn, err)
	}
	log.Logf(2, "instruction %v: %v -> record %v", i, insn, id)
	return nil
}
