package utils

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestGetTempFileName(t *testing.T) {
	path := filepath.Join("some", "dir", "people.dat")
	a := GetTempFileName(path)
	b := GetTempFileName(path)
	if a == b {
		t.Errorf("expected unique names, got %s twice", a)
	}
	if filepath.Dir(a) != filepath.Dir(path) {
		t.Errorf("expected %s to be in %s", a, filepath.Dir(path))
	}
	if !strings.HasPrefix(filepath.Base(a), ".people.dat.") || !strings.HasSuffix(a, ".tmp") {
		t.Errorf("unexpected temp file name %s", a)
	}
}

func TestGetTempFileNameBareName(t *testing.T) {
	a := GetTempFileName("people.dat")
	if filepath.Dir(a) != "." {
		t.Errorf("expected temp file in the working directory, got %s", a)
	}
}
