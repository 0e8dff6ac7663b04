package kvfile

import (
	"fmt"
	"os"
)

// tempFilePrefix marks in-flight writes so the watcher can skip them.
const tempFilePrefix = "scribe-tmp-"

const keyFileMode = os.FileMode(0644)

// writeAtomic replaces the file holding key without ever exposing a
// partial payload: the bytes land in a temp file in the store directory
// (same filesystem, so the final step is a rename) and only a fully
// synced temp file is moved over the target.
func (b *Backend) writeAtomic(key string, data []byte) error {
	tmp, err := os.CreateTemp(b.Dir, tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp file for %q: %w", key, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once the rename has happened

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("write temp file for %q: %w", key, err)
	}

	if err := os.Chmod(tmpName, keyFileMode); err != nil {
		return fmt.Errorf("chmod temp file for %q: %w", key, err)
	}
	if err := os.Rename(tmpName, b.pathFor(key)); err != nil {
		return fmt.Errorf("publish %q: %w", key, err)
	}
	return nil
}
