// Copyright 2026 seqgen project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package catalog holds named, weighted groups of instruction identifiers
// from which generation runs draw.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

var (
	ErrUnknownGroup   = errors.New("unknown instruction group")
	ErrDuplicateGroup = errors.New("duplicate instruction group")
)

// Entry is a single selectable instruction with its relative weight.
type Entry struct {
	Name   string
	Weight uint64
}

// Group is a weighted set of instruction identifiers.
// Entries order is significant only for reproducibility of seeded draws.
type Group struct {
	Name    string
	Entries []Entry
}

func NewGroup(name string, entries ...Entry) *Group {
	g := &Group{Name: name}
	for _, e := range entries {
		g.add(e)
	}
	return g
}

// Uniform creates a group where every instruction has the same weight.
func Uniform(name string, weight uint64, insns ...string) *Group {
	g := &Group{Name: name}
	for _, insn := range insns {
		g.add(Entry{insn, weight})
	}
	return g
}

func (g *Group) add(e Entry) {
	for i := range g.Entries {
		if g.Entries[i].Name == e.Name {
			g.Entries[i].Weight = addWeights(g.Entries[i].Weight, e.Weight)
			return
		}
	}
	g.Entries = append(g.Entries, e)
}

// TotalWeight returns the sum of entry weights, saturated at math.MaxUint64.
func (g *Group) TotalWeight() uint64 {
	var sum uint64
	for _, e := range g.Entries {
		sum = addWeights(sum, e.Weight)
	}
	return sum
}

// addWeights saturates instead of wrapping around. Saturated weights are far
// beyond what a weighted draw accepts, so they are rejected there.
func addWeights(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

// Weight returns the weight of the instruction, 0 if it is not in the group.
func (g *Group) Weight(insn string) uint64 {
	for _, e := range g.Entries {
		if e.Name == insn {
			return e.Weight
		}
	}
	return 0
}

func (g *Group) Contains(insn string) bool {
	for _, e := range g.Entries {
		if e.Name == insn {
			return true
		}
	}
	return false
}

func (g *Group) Names() []string {
	var names []string
	for _, e := range g.Entries {
		names = append(names, e.Name)
	}
	return names
}

func (g *Group) String() string {
	return fmt.Sprintf("%v[%v insns, weight %v]", g.Name, len(g.Entries), g.TotalWeight())
}

// Merge returns the union of the groups.
// An instruction present in several groups gets the sum of its weights,
// so the total weight of the result is the sum of the totals of the inputs
// and no input is renormalized.
func Merge(name string, groups ...*Group) *Group {
	res := &Group{Name: name}
	for _, g := range groups {
		for _, e := range g.Entries {
			res.add(e)
		}
	}
	return res
}

// Catalog maps group names to groups. It is populated before generation
// starts and is read-only afterwards.
type Catalog struct {
	groups map[string]*Group
}

func New() *Catalog {
	return &Catalog{groups: make(map[string]*Group)}
}

// Default returns a fresh catalog with the built-in RISC-V groups.
func Default() *Catalog {
	c := New()
	for _, g := range riscvGroups() {
		if err := c.Register(g); err != nil {
			panic(err)
		}
	}
	return c
}

func (c *Catalog) Register(g *Group) error {
	if g == nil || g.Name == "" {
		return fmt.Errorf("registering group without a name")
	}
	if strings.Contains(g.Name, GroupSeparator) {
		return fmt.Errorf("group name %q must not contain %q", g.Name, GroupSeparator)
	}
	if c.groups[g.Name] != nil {
		return fmt.Errorf("%w: %v", ErrDuplicateGroup, g.Name)
	}
	c.groups[g.Name] = g
	return nil
}

func (c *Catalog) Group(name string) (*Group, error) {
	g := c.groups[name]
	if g == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, name)
	}
	return g, nil
}

// GroupSeparator joins group names in a merge expression, e.g. "RV32F+RV_A".
const GroupSeparator = "+"

// Resolve returns the group named by names. Each name may itself be a merge
// expression. A single plain name returns the registered group as is,
// anything else returns a merged group.
func (c *Catalog) Resolve(names ...string) (*Group, error) {
	var parts []string
	for _, name := range names {
		for _, part := range strings.Split(name, GroupSeparator) {
			if part = strings.TrimSpace(part); part != "" {
				parts = append(parts, part)
			}
		}
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: no group names given", ErrUnknownGroup)
	}
	var groups []*Group
	for _, part := range parts {
		g, err := c.Group(part)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if len(groups) == 1 {
		return groups[0], nil
	}
	return Merge(strings.Join(parts, GroupSeparator), groups...), nil
}

// Groups returns sorted names of all registered groups.
func (c *Catalog) Groups() []string {
	var names []string
	for name := range c.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Known says if the instruction belongs to any registered group.
func (c *Catalog) Known(insn string) bool {
	for _, g := range c.groups {
		if g.Contains(insn) {
			return true
		}
	}
	return false
}
