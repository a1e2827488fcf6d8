//go:build windows

package platform

import (
	"log"
	"path/filepath"
	"strings"
)

func init() {
	log.Println("memlab: Windows native mode activated (pure Go)")
}

// LongPathname ensures Windows paths handle the extended length prefix.
// File demos create thousands of files, so deeply nested working
// directories can push absolute paths past MAX_PATH.
func LongPathname(path string) string {
	if len(path) < 2 || path[1] != ':' {
		return path
	}
	if filepath.IsAbs(path) && !strings.HasPrefix(path, `\\?\`) {
		return `\\?\` + filepath.Clean(path)
	}
	return path
}
