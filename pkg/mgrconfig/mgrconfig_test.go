// Copyright 2026 seqgen project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package mgrconfig

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isagen/seqgen/pkg/catalog"
	"github.com/isagen/seqgen/pkg/sequence"
)

func TestCanned(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.cfg"))
	require.NoError(t, err)
	yamlFiles, err := filepath.Glob(filepath.Join("testdata", "rv*.yaml"))
	require.NoError(t, err)
	files = append(files, yamlFiles...)
	require.NotEmpty(t, files)
	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			cfg, err := LoadFile(file)
			require.NoError(t, err)
			cat, err := cfg.Catalog()
			require.NoError(t, err)
			runCfg, err := cfg.RunConfig(cat)
			require.NoError(t, err)
			_, err = runCfg.InstructionCount()
			require.NoError(t, err)
			group, err := runCfg.ActiveGroup()
			require.NoError(t, err)
			assert.NotZero(t, group.TotalWeight())
		})
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := LoadData([]byte(`{"app_register_width": 32}`))
	require.NoError(t, err)
	assert.Equal(t, sequence.TypeRandom, cfg.Sequence)
	assert.Equal(t, 1, cfg.Programs)
	assert.Nil(t, cfg.Seed)
	runCfg, err := cfg.RunConfig(mustCatalog(t, cfg))
	require.NoError(t, err)
	count, err := runCfg.InstructionCount()
	require.NoError(t, err)
	assert.Equal(t, sequence.DefaultInstructionCount, count)
	group, err := runCfg.ActiveGroup()
	require.NoError(t, err)
	assert.Equal(t, "RV32F", group.Name)
}

func TestMergedGroups(t *testing.T) {
	cfg, err := LoadFile(filepath.Join("testdata", "merged.cfg"))
	require.NoError(t, err)
	cat := mustCatalog(t, cfg)
	runCfg, err := cfg.RunConfig(cat)
	require.NoError(t, err)
	group, err := runCfg.ActiveGroup()
	require.NoError(t, err)
	rv64f, err := cat.Group("RV64F")
	require.NoError(t, err)
	assert.Equal(t, rv64f.TotalWeight()+40, group.TotalWeight())
	assert.True(t, group.Contains("LW##RISCV"))
}

func TestRunTimeErrorsAreDeferred(t *testing.T) {
	// Bad count and width are accepted by the loader, the run rejects them.
	cfg, err := LoadData([]byte(`{"options": {"instruction_count": "abc"}, "app_register_width": 16}`))
	require.NoError(t, err)
	runCfg, err := cfg.RunConfig(mustCatalog(t, cfg))
	require.NoError(t, err)
	_, err = runCfg.InstructionCount()
	assert.ErrorIs(t, err, sequence.ErrConfig)
	_, err = runCfg.ActiveGroup()
	assert.ErrorIs(t, err, sequence.ErrConfig)

	cfg, err = LoadData([]byte(`{}`))
	require.NoError(t, err)
	runCfg, err = cfg.RunConfig(mustCatalog(t, cfg))
	require.NoError(t, err)
	_, err = runCfg.ActiveGroup()
	assert.ErrorIs(t, err, sequence.ErrConfig)
}

func TestInstruction(t *testing.T) {
	cfg, err := LoadData([]byte(`{"sequence": "single", "instruction": "FADD.S##RISCV"}`))
	require.NoError(t, err)
	runCfg, err := cfg.RunConfig(mustCatalog(t, cfg))
	require.NoError(t, err)
	insn, ok := runCfg.Option(sequence.OptionInstruction)
	assert.True(t, ok)
	assert.Equal(t, "FADD.S##RISCV", insn)
}

func TestLoadErrors(t *testing.T) {
	tests := []string{
		`{"target": "x86"}`,
		`{"sequence": "nosuch"}`,
		`{"backend": "nosuch"}`,
		`{"programs": 0}`,
		`{"capacity": -1}`,
		`{"groups32": []}`,
		`{"instruction": "A", "options": {"instruction": "B"}}`,
		`{"unknown_field": 1}`,
		`{"app_register_width": "64"}`,
	}
	for _, test := range tests {
		_, err := LoadData([]byte(test))
		assert.Error(t, err, test)
	}
}

func TestUnknownGroup(t *testing.T) {
	cfg, err := LoadData([]byte(`{"groups64": ["NoSuchGroup"]}`))
	require.NoError(t, err)
	_, err = cfg.RunConfig(mustCatalog(t, cfg))
	assert.ErrorIs(t, err, sequence.ErrConfig)
}

func mustCatalog(t *testing.T, cfg *Config) *catalog.Catalog {
	cat, err := cfg.Catalog()
	require.NoError(t, err)
	return cat
}
