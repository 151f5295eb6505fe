package lockfile

import (
	"errors"
	"fmt"
	"os"
)

// DBExistsAndWritable verifies the database file is present and the
// process can open it for writing. It never creates the file.
func DBExistsAndWritable(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("database file %s does not exist (run discover first)", path)
	}
	if err != nil {
		return fmt.Errorf("stat database %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("database path %s is a directory", path)
	}

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("database %s is not writable: %w", path, err)
	}
	return f.Close()
}
