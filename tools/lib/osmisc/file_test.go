// Copyright 2026 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package osmisc

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadWriteRoundTrip(t *testing.T) {
	contents := []byte(`{"traceEvents":[]}`)
	for _, name := range []string{"trace.json", "trace.json.gz"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "dir", name)
			if err := WriteFile(path, contents); err != nil {
				t.Fatalf("WriteFile(%q) failed: %v", path, err)
			}
			got, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile(%q) failed: %v", path, err)
			}
			if diff := cmp.Diff(contents, got); diff != "" {
				t.Errorf("round trip returned wrong contents (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompressedOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json.gz")
	contents := bytes.Repeat([]byte(`{"ph":"X"},`), 100)
	if err := WriteFile(path, contents); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// gzip magic number.
	if len(raw) < 2 || raw[0] != 0x1f || raw[1] != 0x8b {
		t.Errorf("%s is not gzip-compressed: % x", path, raw[:2])
	}
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := ReadFile(filepath.Join(dir, "missing.json")); !os.IsNotExist(err) {
		t.Errorf("ReadFile on a missing file returned %v, want a not-exist error", err)
	}

	notGzip := filepath.Join(dir, "plain.json.gz")
	if err := os.WriteFile(notGzip, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(notGzip); err == nil {
		t.Errorf("ReadFile(%q) should fail for a non-gzip payload", notGzip)
	}
}

func TestCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "subdir2", "file")
	f, err := CreateFile(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close file: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("created file is missing: %v", err)
	}
}
