// Copyright 2026 seqgen project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package harness

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/isagen/seqgen/pkg/osutil"
)

const xzSuffix = ".xz"

// WriteResults saves generated programs according to the output configuration.
// Failed runs are saved as well, their partial programs carry the error attribute.
// With an empty output programs are written to w.
func (h *Harness) WriteResults(results []*Result, w io.Writer) error {
	output := h.cfg.Output
	for _, res := range results {
		if res == nil || res.Program == nil {
			continue
		}
		data := res.Program.Serialize()
		if output == "" {
			if _, err := w.Write(data); err != nil {
				return err
			}
			continue
		}
		file := output
		if len(results) > 1 {
			file = filepath.Join(output, fmt.Sprintf("prog-%v.txt", res.Index))
		}
		if h.cfg.Compress && !strings.HasSuffix(file, xzSuffix) {
			file += xzSuffix
		}
		if err := writeProgram(file, data); err != nil {
			return err
		}
	}
	return nil
}

func writeProgram(file string, data []byte) error {
	if strings.HasSuffix(file, xzSuffix) {
		var err error
		if data, err = compress(data); err != nil {
			return fmt.Errorf("failed to compress %v: %w", file, err)
		}
	}
	return osutil.WriteFile(file, data)
}

func compress(data []byte) ([]byte, error) {
	buf := new(bytes.Buffer)
	w, err := xz.NewWriter(buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
