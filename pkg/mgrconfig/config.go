// Copyright 2026 seqgen project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package mgrconfig

type Config struct {
	// Instance name (used for identification in logs and program headers).
	Name string `json:"name"`
	// Target ISA, only "riscv" is supported.
	Target string `json:"target"`
	// Generator options passed to the sequence as is, e.g.:
	//	"options": {"instruction_count": "500"}
	// instruction_count must be a positive integer, 100 if not set.
	Options map[string]string `json:"options,omitempty"`
	// Register width of the target (32 or 64). Selects Groups32 or Groups64.
	// Width is checked when a run starts, a missing or unsupported width fails
	// the run before anything is generated.
	AppRegisterWidth *int `json:"app_register_width,omitempty"`
	// Instruction groups used on 32-bit targets. Several groups are merged
	// into one, an element may also be a merge expression ("RV32F+RV_A").
	// Defaults to ["RV32F"].
	Groups32 []string `json:"groups32,omitempty"`
	// Instruction groups used on 64-bit targets, defaults to ["RV64F"].
	Groups64 []string `json:"groups64,omitempty"`
	// Additional YAML catalog files with group definitions (optional).
	Catalogs []string `json:"catalogs,omitempty"`
	// Sequence type: "random" (default) or "single".
	Sequence string `json:"sequence"`
	// Instruction generated by the "single" sequence, e.g. "ADD##RISCV".
	Instruction string `json:"instruction,omitempty"`
	// Generation backend type: "text" (default) or "nop".
	Backend string `json:"backend"`
	// Maximum number of instructions in a program, 0 means no limit.
	Capacity int `json:"capacity,omitempty"`
	// Number of independent programs to generate (1 by default).
	// Every program is generated by its own run with own random source.
	Programs int `json:"programs"`
	// Seed of the random source of the first program, program i uses seed+i.
	// If not set, a time-based seed is used.
	Seed *int64 `json:"seed,omitempty"`
	// Output file or directory. With a single program it's the program file,
	// otherwise a directory where prog-N files are created.
	// Programs are printed to stdout if empty.
	Output string `json:"output,omitempty"`
	// Compress output files with xz and add .xz suffix.
	// A single output file with .xz suffix is compressed regardless.
	Compress bool `json:"compress,omitempty"`
}
