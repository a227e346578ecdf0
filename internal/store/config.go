package store

import (
	"os"
	"path/filepath"
)

const (
	dataDirName = ".backlog"
	dbFileName  = "db.json"
)

// DiscoverDir walks up from start looking for a .backlog directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, dataDirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir resolves the data directory: $BACKLOG_DIR if set, otherwise the
// nearest .backlog directory above the working directory, otherwise
// ./.backlog (created on first write).
func DefaultDir() (string, error) {
	if dir := os.Getenv("BACKLOG_DIR"); dir != "" {
		return dir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, dataDirName), nil
}

// DBPath returns the state file path inside dir.
func DBPath(dir string) string {
	return filepath.Join(dir, dbFileName)
}
