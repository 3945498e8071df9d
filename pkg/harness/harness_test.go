// Copyright 2026 seqgen project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"

	"github.com/isagen/seqgen/pkg/catalog"
	"github.com/isagen/seqgen/pkg/mgrconfig"
	"github.com/isagen/seqgen/pkg/program"
	"github.com/isagen/seqgen/pkg/sequence"
)

func newHarness(t *testing.T, cfgData string) *Harness {
	cfg, err := mgrconfig.LoadData([]byte(cfgData))
	require.NoError(t, err)
	h, err := New(cfg)
	require.NoError(t, err)
	return h
}

func insns(p *program.Program) []string {
	var res []string
	for _, rec := range p.Records {
		res = append(res, rec.Insn)
	}
	return res
}

func TestGenerate(t *testing.T) {
	for _, width := range []int{32, 64} {
		t.Run(fmt.Sprint(width), func(t *testing.T) {
			h := newHarness(t, fmt.Sprintf(`{
				"options": {"instruction_count": "50"},
				"app_register_width": %v
			}`, width))
			res := h.Generate(0, 1)
			require.NoError(t, res.Err)
			require.Equal(t, 50, res.Program.Len())
			group, err := h.Catalog().Group(fmt.Sprintf("RV%vF", width))
			require.NoError(t, err)
			for _, insn := range insns(res.Program) {
				assert.True(t, group.Contains(insn), insn)
			}
			assert.Equal(t, "1", res.Program.Attr("seed"))
			assert.Equal(t, fmt.Sprint(width), res.Program.Attr("width"))
			assert.Equal(t, group.Name, res.Program.Attr("group"))
			assert.Empty(t, res.Program.Attr("error"))
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	h := newHarness(t, `{"app_register_width": 64, "groups64": ["RV_G"]}`)
	res1 := h.Generate(0, 42)
	res2 := h.Generate(0, 42)
	require.NoError(t, res1.Err)
	require.NoError(t, res2.Err)
	if diff := cmp.Diff(insns(res1.Program), insns(res2.Program)); diff != "" {
		t.Fatal(diff)
	}
	assert.NotEqual(t, res1.Program.ID, res2.Program.ID)
	res3 := h.Generate(0, 43)
	assert.NotEqual(t, insns(res1.Program), insns(res3.Program))
}

func TestGenerateConfigError(t *testing.T) {
	for _, cfg := range []string{
		`{"app_register_width": 64, "options": {"instruction_count": "0"}}`,
		`{"app_register_width": 64, "options": {"instruction_count": "abc"}}`,
		`{"app_register_width": 48}`,
		`{}`,
	} {
		h := newHarness(t, cfg)
		res := h.Generate(0, 0)
		assert.ErrorIs(t, res.Err, sequence.ErrConfig, cfg)
		require.NotNil(t, res.Program)
		assert.Zero(t, res.Program.Len(), cfg)
		assert.NotEmpty(t, res.Program.Attr("error"))
	}
}

func TestZeroWeightCatalog(t *testing.T) {
	dir := t.TempDir()
	catFile := filepath.Join(dir, "zero.yaml")
	require.NoError(t, os.WriteFile(catFile,
		[]byte("groups: [{name: Zero, instructions: [{name: ADD##RISCV, weight: 0}]}]\n"), 0644))
	cfg, err := mgrconfig.LoadData([]byte(fmt.Sprintf(`{
		"app_register_width": 64,
		"catalogs": [%q],
		"groups64": ["Zero"]
	}`, catFile)))
	require.NoError(t, err)
	// The group is rejected when the catalog loads, before any run starts.
	_, err = New(cfg)
	assert.ErrorContains(t, err, "zero total weight")
}

func TestGenerateBackendFailure(t *testing.T) {
	h := newHarness(t, `{"app_register_width": 32, "capacity": 10}`)
	res := h.Generate(0, 0)
	assert.ErrorIs(t, res.Err, program.ErrProgramFull)
	// Already generated instructions stay in the program.
	assert.Equal(t, 10, res.Program.Len())
}

func TestGenerateSingle(t *testing.T) {
	h := newHarness(t, `{
		"app_register_width": 64,
		"sequence": "single",
		"instruction": "FCVT.L.S##RISCV",
		"options": {"instruction_count": "3"}
	}`)
	res := h.Generate(0, 0)
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"FCVT.L.S##RISCV", "FCVT.L.S##RISCV", "FCVT.L.S##RISCV"}, insns(res.Program))

	// The instruction is not available on 32-bit targets.
	h = newHarness(t, `{
		"app_register_width": 32,
		"sequence": "single",
		"instruction": "FCVT.L.S##RISCV"
	}`)
	res = h.Generate(0, 0)
	assert.ErrorIs(t, res.Err, sequence.ErrConfig)
}

func TestGenerateAll(t *testing.T) {
	h := newHarness(t, `{
		"app_register_width": 64,
		"programs": 8,
		"options": {"instruction_count": "20"}
	}`)
	results, err := h.GenerateAll(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, results, 8)
	for i, res := range results {
		require.NotNil(t, res)
		assert.Equal(t, i, res.Index)
		assert.Equal(t, int64(100+i), res.Seed)
		assert.Equal(t, 20, res.Program.Len())
		// Same as a standalone run with the same seed.
		single := h.Generate(i, res.Seed)
		assert.Equal(t, insns(single.Program), insns(res.Program))
	}
}

func TestGenerateAllFailure(t *testing.T) {
	h := newHarness(t, `{"app_register_width": 16, "programs": 4}`)
	results, err := h.GenerateAll(context.Background(), 0)
	assert.ErrorIs(t, err, sequence.ErrConfig)
	require.Len(t, results, 4)
}

func TestGenerateAllCancelled(t *testing.T) {
	h := newHarness(t, `{"app_register_width": 64, "programs": 4}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := h.GenerateAll(ctx, 0)
	assert.ErrorIs(t, err, context.Canceled)
	for _, res := range results {
		assert.Nil(t, res)
	}
}

func TestWriteResults(t *testing.T) {
	dir := t.TempDir()
	h := newHarness(t, fmt.Sprintf(`{
		"app_register_width": 64,
		"programs": 3,
		"compress": true,
		"output": %q
	}`, filepath.Join(dir, "out")))
	results, err := h.GenerateAll(context.Background(), 0)
	require.NoError(t, err)
	require.NoError(t, h.WriteResults(results, nil))
	for i, res := range results {
		data, err := os.ReadFile(filepath.Join(dir, "out", fmt.Sprintf("prog-%v.txt.xz", i)))
		require.NoError(t, err)
		r, err := xz.NewReader(bytes.NewReader(data))
		require.NoError(t, err)
		text, err := io.ReadAll(r)
		require.NoError(t, err)
		p, err := program.Deserialize(text)
		require.NoError(t, err)
		assert.Equal(t, res.Program.ID, p.ID)
		assert.Equal(t, insns(res.Program), insns(p))
	}
}

func TestWriteResultsSingleFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "prog.txt")
	h := newHarness(t, fmt.Sprintf(`{"app_register_width": 32, "output": %q}`, file))
	results, err := h.GenerateAll(context.Background(), 5)
	require.NoError(t, err)
	require.NoError(t, h.WriteResults(results, nil))
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, results[0].Program.Serialize(), data)
}

func TestWriteResultsStdout(t *testing.T) {
	h := newHarness(t, `{"app_register_width": 32, "options": {"instruction_count": "4"}, "programs": 2}`)
	results, err := h.GenerateAll(context.Background(), 5)
	require.NoError(t, err)
	buf := new(bytes.Buffer)
	require.NoError(t, h.WriteResults(results, buf))
	want := append(results[0].Program.Serialize(), results[1].Program.Serialize()...)
	assert.Equal(t, string(want), buf.String())
}

var errNoSequence = errors.New("sequence is not available")

func init() {
	// Host code can plug its own sequence types into the registry.
	sequence.Register("alternate", func(env *sequence.Env) (sequence.Sequence, error) {
		return &alternateSequence{env}, nil
	})
	sequence.Register("unavailable", func(env *sequence.Env) (sequence.Sequence, error) {
		return nil, errNoSequence
	})
}

func TestSequenceConstructionFailure(t *testing.T) {
	h := newHarness(t, `{"app_register_width": 64, "sequence": "unavailable"}`)
	failed := statFailed.Val()
	res := h.Generate(3, 7)
	assert.ErrorIs(t, res.Err, errNoSequence)
	require.NotNil(t, res.Program)
	assert.Zero(t, res.Program.Len())
	assert.Equal(t, errNoSequence.Error(), res.Program.Attr("error"))
	assert.Equal(t, "7", res.Program.Attr("seed"))
	assert.Equal(t, failed+1, statFailed.Val())
}

func TestCustomSequence(t *testing.T) {
	h := newHarness(t, `{"app_register_width": 64, "sequence": "alternate"}`)
	res := h.Generate(0, 0)
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"FADD.S##RISCV", "FSUB.S##RISCV", "FADD.S##RISCV", "FSUB.S##RISCV"}, insns(res.Program))
}

type alternateSequence struct {
	env *sequence.Env
}

func (seq *alternateSequence) Run() error {
	group, err := seq.env.Config.ActiveGroup()
	if err != nil {
		return err
	}
	pair := catalog.Uniform("pair", 1, "FADD.S##RISCV", "FSUB.S##RISCV")
	for i := 0; i < 4; i++ {
		insn := pair.Entries[i%2].Name
		if !group.Contains(insn) {
			return fmt.Errorf("%v is not in %v", insn, group.Name)
		}
		if _, err := seq.env.Backend.GenInstruction(insn); err != nil {
			return err
		}
	}
	return nil
}
