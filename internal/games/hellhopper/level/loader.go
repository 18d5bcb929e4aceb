package level

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

//go:embed levels/*.yaml
var builtinFS embed.FS

// Loader reads level files from a file system.
type Loader struct {
	fsys fs.FS
	root string
}

// NewLoader creates a loader over the given file system and root directory.
func NewLoader(fsys fs.FS, root string) *Loader {
	return &Loader{fsys: fsys, root: root}
}

// Builtin returns a loader over the levels compiled into the binary.
func Builtin() *Loader {
	return NewLoader(builtinFS, "levels")
}

// LoadAll loads every level file under the root, sorted by ID.
// Files that fail to parse are returned as a joined error next to the
// levels that loaded.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level
	var bad []string

	err := fs.WalkDir(l.fsys, l.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isLevelFile(p) {
			return nil
		}

		lvl, err := l.LoadFile(p)
		if err != nil {
			bad = append(bad, err.Error())
			return nil
		}
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", l.root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	if len(bad) > 0 {
		return levels, fmt.Errorf("%w: %s", ErrInvalidLevel, strings.Join(bad, "; "))
	}
	return levels, nil
}

// LoadFile loads a single level file from the loader's file system.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading %s: %w", p, err)
	}

	lvl, err := ParseYAML(data)
	if err != nil {
		return Level{}, fmt.Errorf("parsing %s: %w", p, err)
	}
	lvl.FilePath = p
	return lvl, nil
}

// LoadByID loads the level with the given ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	if err != nil {
		return Level{}, err
	}
	return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, err
}

// LoadPath loads a level file from the operating system's file system.
func LoadPath(filePath string) (Level, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Level{}, fmt.Errorf("reading %s: %w", filePath, err)
	}
	lvl, err := ParseYAML(data)
	if err != nil {
		return Level{}, fmt.Errorf("parsing %s: %w", filePath, err)
	}
	lvl.FilePath = filePath
	return lvl, nil
}

func isLevelFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
