package generate

import (
	"os"
	"path/filepath"

	pkgerrors "github.com/agentstation/ssegen/pkg/errors"
)

// writeFile persists the artifact by writing to a temporary file in the
// destination directory and renaming it over the target, so a failed run
// never leaves a truncated file behind. Any existing content is replaced
// wholesale; there are no incremental updates.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return pkgerrors.NewIOError("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".ssegen-*.tmp")
	if err != nil {
		return pkgerrors.NewIOError("create", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return pkgerrors.NewIOError("write", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return pkgerrors.NewIOError("close", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return pkgerrors.NewIOError("write", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return pkgerrors.NewIOError("rename", path, err)
	}
	return nil
}
