// Copyright 2026 seqgen project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package choice implements weighted random selection of instructions from a group.
package choice

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/isagen/seqgen/pkg/catalog"
)

var (
	ErrEmptyGroup = errors.New("weighted draw from an empty group")
	ErrZeroWeight = errors.New("weighted draw from a group with zero total weight")
	// ErrWeightOverflow is returned for groups with total weight above math.MaxInt64.
	ErrWeightOverflow = errors.New("total weight of the group is too large")
)

// Table is a prepared group for repeated weighted draws.
type Table struct {
	group *catalog.Group
	// runs contains cumulative sum of entry weights,
	// a draw is a binary search of a random point in [1, total].
	runs []uint64
}

func BuildTable(g *catalog.Group) (*Table, error) {
	if g == nil || len(g.Entries) == 0 {
		return nil, ErrEmptyGroup
	}
	runs := make([]uint64, len(g.Entries))
	var sum uint64
	for i, e := range g.Entries {
		if e.Weight > math.MaxInt64-sum {
			return nil, fmt.Errorf("%w: %v", ErrWeightOverflow, g.Name)
		}
		sum += e.Weight
		runs[i] = sum
	}
	if sum == 0 {
		return nil, fmt.Errorf("%w: %v", ErrZeroWeight, g.Name)
	}
	return &Table{group: g, runs: runs}, nil
}

func (t *Table) Group() *catalog.Group {
	return t.group
}

func (t *Table) Choose(r *rand.Rand) string {
	total := t.runs[len(t.runs)-1]
	x := uint64(r.Int63n(int64(total))) + 1
	idx := sort.Search(len(t.runs), func(i int) bool {
		return t.runs[i] >= x
	})
	return t.group.Entries[idx].Name
}

// Picker draws instructions using the random source it was created with.
// Tables are cached per group, groups must not be modified after the first draw.
// Picker is not safe for concurrent use, as is the underlying rand.Rand.
type Picker struct {
	r      *rand.Rand
	tables map[*catalog.Group]*Table
}

func NewPicker(r *rand.Rand) *Picker {
	return &Picker{
		r:      r,
		tables: make(map[*catalog.Group]*Table),
	}
}

func (p *Picker) PickWeighted(g *catalog.Group) (string, error) {
	t := p.tables[g]
	if t == nil {
		var err error
		if t, err = BuildTable(g); err != nil {
			return "", err
		}
		p.tables[g] = t
	}
	return t.Choose(p.r), nil
}
