package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/bpjson/pkg/errors"
)

func TestWriteFileRoundTrip(t *testing.T) {
	doc := []byte(`{"EventGraphs":[],"FunctionGraphs":[],"MacroGraphs":[],"DelegateGraphs":[]}`)
	tests := []struct {
		name       string
		compressed bool
	}{
		{"BP_Door.json", false},
		{"nested/dir/BP_Door.json.zst", true},
		{"upper/BP_Door.json.ZST", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.name)
			if err := WriteFile(path, doc); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}

			raw, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if got := !bytes.Equal(raw, doc); got != tt.compressed {
				t.Errorf("compressed on disk = %v, want %v", got, tt.compressed)
			}

			got, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if !bytes.Equal(got, doc) {
				t.Errorf("ReadFile = %s, want %s", got, doc)
			}
		})
	}
}

func TestWriteFileReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	for _, s := range []string{"first", "second"} {
		if err := WriteFile(path, []byte(s)); err != nil {
			t.Fatal(err)
		}
	}
	got, _ := os.ReadFile(path)
	if string(got) != "second" {
		t.Errorf("content = %q, want second", got)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("directory should hold only the output, got %d entries", len(entries))
	}
}

func TestWriteFileErrors(t *testing.T) {
	if err := WriteFile("", nil); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("empty path err = %v", err)
	}

	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(filepath.Join(blocker, "out.json"), nil); !errors.Is(err, errors.ErrCodeWriteFailure) {
		t.Errorf("parent is a file err = %v", err)
	}
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := ReadFile(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing err = %v", err)
	}

	bad := filepath.Join(dir, "bad.json.zst")
	if err := os.WriteFile(bad, []byte("not zstd"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(bad); err == nil {
		t.Error("corrupt zstd should fail")
	}
}

func TestReadPlainStream(t *testing.T) {
	got, err := Read(strings.NewReader("{}"), "-")
	if err != nil || string(got) != "{}" {
		t.Errorf("Read = %q, %v", got, err)
	}
}

func TestCompressed(t *testing.T) {
	for name, want := range map[string]bool{
		"a.json":     false,
		"a.json.zst": true,
		"a.zst":      true,
		"a.zstd":     false,
		"zst":        false,
	} {
		if got := Compressed(name); got != want {
			t.Errorf("Compressed(%q) = %v, want %v", name, got, want)
		}
	}
}
