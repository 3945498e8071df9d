// Copyright 2026 seqgen project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package program

import (
	"errors"
	"fmt"
	"sort"

	"github.com/isagen/seqgen/pkg/catalog"
	"github.com/isagen/seqgen/pkg/sequence"
)

var (
	ErrUnknownInstruction = errors.New("unknown instruction")
	ErrProgramFull        = errors.New("program is full")
)

// Backend is a generation backend that builds a Program.
type Backend interface {
	sequence.Backend
	Program() *Program
}

// Env configures a backend instance. Every instance gets its own Program.
type Env struct {
	// Catalog is used to reject identifiers that no group knows about.
	// Nil disables the check.
	Catalog *catalog.Catalog
	// Capacity limits the number of instructions in the program, 0 means no limit.
	Capacity int
}

type ctorFunc func(env *Env) (Backend, error)

var Types = make(map[string]ctorFunc)

const (
	TypeText = "text"
	TypeNop  = "nop"
)

func init() {
	Register(TypeText, newText)
	Register(TypeNop, newNop)
}

func Register(typ string, ctor ctorFunc) {
	if ctor == nil {
		panic(fmt.Sprintf("nil constructor for backend %v", typ))
	}
	if Types[typ] != nil {
		panic(fmt.Sprintf("backend %v is already registered", typ))
	}
	Types[typ] = ctor
}

func NewBackend(typ string, env *Env) (Backend, error) {
	ctor := Types[typ]
	if ctor == nil {
		return nil, fmt.Errorf("unknown backend type %q, supported: %v", typ, SupportedTypes())
	}
	if env == nil {
		env = &Env{}
	}
	if env.Capacity < 0 {
		return nil, fmt.Errorf("negative program capacity %v", env.Capacity)
	}
	return ctor(env)
}

func SupportedTypes() []string {
	var res []string
	for typ := range Types {
		res = append(res, typ)
	}
	sort.Strings(res)
	return res
}

// textBackend appends instruction identifiers to the program text.
type textBackend struct {
	env  *Env
	prog *Program
}

func newText(env *Env) (Backend, error) {
	return &textBackend{
		env:  env,
		prog: New(),
	}, nil
}

func (b *textBackend) GenInstruction(insn string) (sequence.RecordID, error) {
	if b.env.Catalog != nil && !b.env.Catalog.Known(insn) {
		return 0, fmt.Errorf("%w: %v", ErrUnknownInstruction, insn)
	}
	if b.env.Capacity != 0 && b.prog.Len() >= b.env.Capacity {
		return 0, fmt.Errorf("%w: %v instructions", ErrProgramFull, b.prog.Len())
	}
	return b.prog.append(insn), nil
}

func (b *textBackend) Program() *Program {
	return b.prog
}

// nopBackend only counts requests, the program stays empty.
// Useful to measure selection alone.
type nopBackend struct {
	prog *Program
	next sequence.RecordID
}

func newNop(env *Env) (Backend, error) {
	return &nopBackend{prog: New()}, nil
}

func (b *nopBackend) GenInstruction(insn string) (sequence.RecordID, error) {
	b.next++
	return b.next, nil
}

func (b *nopBackend) Program() *Program {
	return b.prog
}
