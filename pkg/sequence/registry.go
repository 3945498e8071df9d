// Copyright 2026 seqgen project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package sequence

import (
	"fmt"
	"sort"
)

type ctorFunc func(env *Env) (Sequence, error)

// Types maps sequence type names to their constructors.
var Types = make(map[string]ctorFunc)

const (
	TypeRandom = "random"
	TypeSingle = "single"
)

func init() {
	Register(TypeRandom, newRandom)
	Register(TypeSingle, newSingle)
}

// Register makes a sequence type available to the harness under the name.
func Register(typ string, ctor ctorFunc) {
	if ctor == nil {
		panic(fmt.Sprintf("nil constructor for sequence %v", typ))
	}
	if Types[typ] != nil {
		panic(fmt.Sprintf("sequence %v is already registered", typ))
	}
	Types[typ] = ctor
}

// New creates a sequence of the given registered type.
func New(typ string, env *Env) (Sequence, error) {
	ctor := Types[typ]
	if ctor == nil {
		return nil, fmt.Errorf("unknown sequence type %q, supported: %v", typ, SupportedTypes())
	}
	if err := env.validate(); err != nil {
		return nil, err
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
