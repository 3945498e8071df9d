// Copyright 2026 seqgen project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package program contains the in-progress test program and reference
// generation backends that append instructions to it.
package program

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/isagen/seqgen/pkg/sequence"
)

// Program is a test program being built by a single generation run.
// It is not safe for concurrent mutation.
type Program struct {
	ID      uuid.UUID
	Attrs   []Attr
	Records []Record
}

type Attr struct {
	Name  string
	Value string
}

type Record struct {
	ID   sequence.RecordID
	Insn string
}

func New() *Program {
	return &Program{ID: uuid.New()}
}

// SetAttr sets a header attribute, attributes keep the order of the first set.
// Line breaks in the value are replaced with spaces, an attribute is one header line.
func (p *Program) SetAttr(name string, value any) {
	val := attrReplacer.Replace(fmt.Sprint(value))
	for i := range p.Attrs {
		if p.Attrs[i].Name == name {
			p.Attrs[i].Value = val
			return
		}
	}
	p.Attrs = append(p.Attrs, Attr{name, val})
}

func (p *Program) Attr(name string) string {
	for _, attr := range p.Attrs {
		if attr.Name == name {
			return attr.Value
		}
	}
	return ""
}

func (p *Program) Len() int {
	return len(p.Records)
}

func (p *Program) append(insn string) sequence.RecordID {
	id := sequence.RecordID(len(p.Records) + 1)
	p.Records = append(p.Records, Record{id, insn})
	return id
}

const attrPrefix = "# "

var attrReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Serialize returns text form of the program:
// header attributes as comments followed by one instruction per line.
func (p *Program) Serialize() []byte {
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "%vprogram: %v\n", attrPrefix, p.ID)
	for _, attr := range p.Attrs {
		fmt.Fprintf(buf, "%v%v: %v\n", attrPrefix, attr.Name, attr.Value)
	}
	for _, rec := range p.Records {
		fmt.Fprintf(buf, "%v\n", rec.Insn)
	}
	return buf.Bytes()
}

func Deserialize(data []byte) (*Program, error) {
	p := &Program{}
	s := bufio.NewScanner(bytes.NewReader(data))
	for line := 1; s.Scan(); line++ {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(text, attrPrefix); ok {
			name, value, ok := strings.Cut(rest, ": ")
			if !ok {
				return nil, fmt.Errorf("line %v: bad attribute %q", line, text)
			}
			if name == "program" {
				id, err := uuid.Parse(value)
				if err != nil {
					return nil, fmt.Errorf("line %v: bad program id: %w", line, err)
				}
				p.ID = id
				continue
			}
			p.SetAttr(name, value)
			continue
		}
		if strings.HasPrefix(text, "#") || strings.ContainsAny(text, " \t") {
			return nil, fmt.Errorf("line %v: bad instruction %q", line, text)
		}
		p.append(text)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if p.ID == uuid.Nil {
		return nil, fmt.Errorf("no program id")
	}
	return p, nil
}
