// Copyright 2026 seqgen project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package tool

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFlag(t *testing.T) {
	var l ListFlag
	require.NoError(t, l.Set("a.yaml, b.yaml,,c.yaml"))
	assert.Equal(t, ListFlag{"a.yaml", "b.yaml", "c.yaml"}, l)
	assert.Equal(t, "a.yaml,b.yaml,c.yaml", l.String())
	assert.Error(t, l.Set("d.yaml"))
}

func TestIsSet(t *testing.T) {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	seed := flags.Int64("seed", -1, "")
	flags.Int("width", 0, "")
	require.NoError(t, flags.Parse([]string{"-seed=-1"}))
	assert.Equal(t, int64(-1), *seed)
	assert.True(t, IsSet(flags, "seed"))
	assert.False(t, IsSet(flags, "width"))
	assert.False(t, IsSet(flags, "no-such-flag"))
}
