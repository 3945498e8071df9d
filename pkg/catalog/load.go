// Copyright 2026 seqgen project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk description of additional groups:
//
//	groups:
//	  - name: MyLoads
//	    instructions:
//	      - {name: LW##RISCV, weight: 30}
//	      - {name: LD##RISCV, weight: 10}
//	  - name: MyMix
//	    merge: [MyLoads, RV_A]
type File struct {
	Groups []GroupDesc `yaml:"groups"`
}

type GroupDesc struct {
	Name         string      `yaml:"name"`
	Merge        []string    `yaml:"merge"`
	Instructions []EntryDesc `yaml:"instructions"`
}

// EntryDesc is an Entry as written in a file, weight is mandatory.
type EntryDesc struct {
	Name   string  `yaml:"name"`
	Weight *uint64 `yaml:"weight"`
}

// LoadFile registers groups described in the YAML file in c.
func (c *Catalog) LoadFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read catalog file: %w", err)
	}
	if err := c.LoadData(data); err != nil {
		return fmt.Errorf("%v: %w", filename, err)
	}
	return nil
}

// LoadData registers groups from YAML data in c. Groups may merge groups that
// are already registered or that are defined earlier in the same data.
func (c *Catalog) LoadData(data []byte) error {
	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse catalog: %w", err)
	}
	for _, desc := range file.Groups {
		g, err := c.build(desc)
		if err != nil {
			return err
		}
		if err := c.Register(g); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) build(desc GroupDesc) (*Group, error) {
	if desc.Name == "" {
		return nil, fmt.Errorf("group without a name")
	}
	if len(desc.Merge) == 0 && len(desc.Instructions) == 0 {
		return nil, fmt.Errorf("group %v is empty", desc.Name)
	}
	parts := []*Group{NewGroup(desc.Name)}
	for _, e := range desc.Instructions {
		if e.Name == "" {
			return nil, fmt.Errorf("group %v: instruction without a name", desc.Name)
		}
		if e.Weight == nil {
			return nil, fmt.Errorf("group %v: instruction %v has no weight", desc.Name, e.Name)
		}
		parts[0].add(Entry{e.Name, *e.Weight})
	}
	for _, name := range desc.Merge {
		g, err := c.Group(name)
		if err != nil {
			return nil, fmt.Errorf("group %v: %w", desc.Name, err)
		}
		parts = append(parts, g)
	}
	g := Merge(desc.Name, parts...)
	if g.TotalWeight() == 0 {
		return nil, fmt.Errorf("group %v has zero total weight", desc.Name)
	}
	return g, nil
}
