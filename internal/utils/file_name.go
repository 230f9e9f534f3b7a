package utils

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
)

// GetTempFileName returns a unique path in the same directory as path, so that a rename
// onto path never crosses a filesystem boundary
func GetTempFileName(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.NewString()))
}
