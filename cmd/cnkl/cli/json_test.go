// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestEmitJSON(t *testing.T) {
	var output JSONOutput
	var buffer bytes.Buffer

	done, err := output.EmitJSON(&buffer, map[string]int{"chunks": 3})
	if done || err != nil || buffer.Len() != 0 {
		t.Fatalf("EmitJSON without --json = (%v, %v), wrote %q", done, err, buffer.String())
	}

	output.OutputJSON = true
	done, err = output.EmitJSON(&buffer, map[string]int{"chunks": 3})
	if !done || err != nil {
		t.Fatalf("EmitJSON = (%v, %v)", done, err)
	}
	if got := buffer.String(); got != "{\n  \"chunks\": 3\n}\n" {
		t.Errorf("output = %q", got)
	}
}

func TestEmitJSON_NilSlice(t *testing.T) {
	output := JSONOutput{OutputJSON: true}
	var buffer bytes.Buffer

	var changed []uint64
	if _, err := output.EmitJSON(&buffer, changed); err != nil {
		t.Fatalf("EmitJSON: %v", err)
	}
	if got := strings.TrimSpace(buffer.String()); got != "[]" {
		t.Errorf("nil slice encoded as %q, want []", got)
	}
}
