//go:build !windows

package hexline

import (
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// outputPerm is the mode given to newly created output files.
const outputPerm os.FileMode = 0644

// WriteFileAtomic writes data to a temporary file next to path and renames it over
// path, so readers see either the old contents or the complete new contents.
// An existing file keeps its permission bits.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(path, data, perm, renameio.WithTempDir(filepath.Dir(path)))
}
