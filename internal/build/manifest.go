package build

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/zeebo/blake3"
)

const manifestFile = ".manualkit-manifest.json"

// manifest records the blake3 digest of every file a build wrote, keyed by
// slash-separated path relative to the output directory.
type manifest struct {
	Files map[string]string `json:"files"`
}

func digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// readManifest loads the manifest of the previous build. A missing manifest
// is an empty one.
func readManifest(dir string) (*manifest, error) {
	m := &manifest{Files: map[string]string{}}
	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if os.IsNotExist(err) {
		return m, nil
	}
	if err != nil {
		return m, err
	}
	if err := json.Unmarshal(data, m); err != nil {
		return &manifest{Files: map[string]string{}}, fmt.Errorf("decoding %s: %w", manifestFile, err)
	}
	if m.Files == nil {
		m.Files = map[string]string{}
	}
	return m, nil
}

func (m *manifest) write(dir string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, manifestFile), append(data, '\n'), 0o644)
}

// unchanged reports whether name was written by the previous build with the
// same digest and is still on disk.
func (m *manifest) unchanged(dir, name, sum string) bool {
	if m.Files[name] != sum {
		return false
	}
	_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(name)))
	return err == nil
}

// stale returns the files of m that next no longer produces, sorted.
func (m *manifest) stale(next *manifest) []string {
	var out []string
	for name := range m.Files {
		if _, ok := next.Files[name]; !ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
