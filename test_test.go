package jot

import (
	"errors"
	"io"
	"math"
	"os"
	"strings"
	"testing"
)

type decodeTestCase struct {
	label  string
	input  string
	output string
	rest   string
	errIs  error
	errStr string
}

func testWithDecode(t *testing.T, cases []decodeTestCase) {
	t.Helper()

	for _, c := range cases {
		c := c
		t.Run(c.label, func(t *testing.T) {
			t.Parallel()

			v, rest, err := Decode([]byte(c.input))
			if c.errIs != nil || c.errStr != "" {
				if err == nil {
					t.Fatalf("expected error, but got value %s", v)
				}
				if c.errIs != nil && !errors.Is(err, c.errIs) {
					t.Errorf("expected error class %v, but got %v", c.errIs, err)
				}
				if c.errStr != "" && !strings.Contains(err.Error(), c.errStr) {
					t.Errorf("expected error with '%s', but got %v", c.errStr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := v.String(); got != c.output {
				t.Errorf("decoded value doesn't match expected:\nGot:    %s\nExpect: %s", got, c.output)
			}
			if string(rest) != c.rest {
				t.Errorf("remainder doesn't match expected:\nGot:    %q\nExpect: %q", string(rest), c.rest)
			}
		})
	}
}

func getTestFiles(t *testing.T, dir, prefix, suffix string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	keep := make([]string, 0)
	for _, entry := range entries {
		name := entry.Name()
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			continue
		}
		if suffix != "" && !strings.HasSuffix(name, suffix) {
			continue
		}
		keep = append(keep, name)
	}

	return keep
}

// chunkReader returns one predefined chunk per Read call, to pin down
// decoder behavior at read boundaries.
type chunkReader struct {
	chunks []string
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	if n < len(r.chunks[0]) {
		r.chunks[0] = r.chunks[0][n:]
	} else {
		r.chunks = r.chunks[1:]
	}
	return n, nil
}

// renderable reports whether the compact rendering of v decodes back to
// the same value: string content must be free of quotes and backslashes
// and numbers must be finite.
func renderable(v *Value) bool {
	switch v.Type() {
	case TypeNumber:
		return !math.IsInf(v.Float64(), 0)
	case TypeString:
		return !strings.ContainsAny(v.StringValue(), `"\`)
	case TypeArray:
		for _, item := range v.Items() {
			if !renderable(item) {
				return false
			}
		}
		return true
	case TypeObject:
		for _, m := range v.Members() {
			if strings.ContainsAny(m.Key, `"\`) || !renderable(m.Value) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
