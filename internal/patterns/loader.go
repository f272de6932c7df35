package patterns

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed catalogs/*.txt
var builtinFS embed.FS

// catalogExt is the extension of catalog files.
const catalogExt = ".txt"

// Builtin returns the names of the embedded catalogs, sorted.
func Builtin() []string {
	entries, err := fs.ReadDir(builtinFS, "catalogs")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != catalogExt {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), catalogExt))
	}
	sort.Strings(names)
	return names
}

// LoadBuiltin parses an embedded catalog by name.
func LoadBuiltin(name string) (*Catalog, error) {
	data, err := builtinFS.ReadFile(path.Join("catalogs", name+catalogExt))
	if err != nil {
		return nil, fmt.Errorf("patterns: unknown built-in catalog %q", name)
	}

	cat, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("built-in %s: %w", name, err)
	}
	cat.Name = name
	return cat, nil
}

// Source identifies where a catalog comes from. The catalog is re-read on
// every restart, so an edited file takes effect without relaunching.
type Source struct {
	Name string // Built-in catalog name, or display name for a file
	Path string // File path; empty for built-in catalogs
}

// BuiltinSource returns a source for an embedded catalog.
func BuiltinSource(name string) Source {
	return Source{Name: name}
}

// FileSource returns a source for a catalog on disk.
func FileSource(p string) Source {
	return Source{Name: nameFromPath(p), Path: p}
}

// Load reads the catalog from its source.
func (s Source) Load() (*Catalog, error) {
	if s.Path != "" {
		return Load(s.Path)
	}
	return LoadBuiltin(s.Name)
}

// ID returns a stable identifier suitable for the run journal.
func (s Source) ID() string {
	if s.Path != "" {
		return "file:" + s.Path
	}
	return s.Name
}

// SourceFromID reverses Source.ID.
func SourceFromID(id string) Source {
	if p, ok := strings.CutPrefix(id, "file:"); ok {
		return FileSource(p)
	}
	return BuiltinSource(id)
}

// Loader handles loading catalogs from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new catalog loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all catalog files.
// Invalid files are skipped. Returns catalogs sorted by name.
func (l *Loader) LoadAll() ([]*Catalog, error) {
	var cats []*Catalog

	err := filepath.WalkDir(l.Root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.ToLower(filepath.Ext(p)) != catalogExt {
			return nil
		}

		cat, err := Load(p)
		if err != nil {
			return nil
		}
		cats = append(cats, cat)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("patterns: walking directory %s: %w", l.Root, err)
	}

	sort.Slice(cats, func(i, j int) bool {
		return cats[i].Name < cats[j].Name
	})
	return cats, nil
}

// Sources lists the catalog files under the root as sources, sorted by name.
func (l *Loader) Sources() ([]Source, error) {
	cats, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	sources := make([]Source, 0, len(cats))
	for _, c := range cats {
		sources = append(sources, Source{Name: c.Name, Path: c.path})
	}
	return sources, nil
}

func nameFromPath(p string) string {
	return strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
}
