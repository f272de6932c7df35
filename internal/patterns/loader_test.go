package patterns

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinCatalogsParse(t *testing.T) {
	names := Builtin()
	if len(names) < 3 {
		t.Fatalf("expected at least 3 built-in catalogs, got %v", names)
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			cat, err := LoadBuiltin(name)
			if err != nil {
				t.Fatalf("LoadBuiltin(%q) failed: %v", name, err)
			}
			if cat.Name != name {
				t.Errorf("Name = %q, expected %q", cat.Name, name)
			}
			if cat.Lanes < LanesMin || cat.Lanes > LanesMax {
				t.Errorf("Lanes = %d out of bounds", cat.Lanes)
			}
			if len(cat.Patterns) == 0 {
				t.Error("catalog has no patterns")
			}
		})
	}
}

func TestBuiltinLaneCounts(t *testing.T) {
	want := map[string]int{"hexagon": 6, "square": 4, "octagon": 8}
	for name, lanes := range want {
		cat, err := LoadBuiltin(name)
		if err != nil {
			t.Fatalf("LoadBuiltin(%q) failed: %v", name, err)
		}
		if cat.Lanes != lanes {
			t.Errorf("%s: Lanes = %d, expected %d", name, cat.Lanes, lanes)
		}
	}
}

func TestLoadBuiltinUnknown(t *testing.T) {
	if _, err := LoadBuiltin("dodecagon"); err == nil {
		t.Error("expected error for unknown catalog")
	}
}

func TestSourceIDRoundTrip(t *testing.T) {
	for _, src := range []Source{BuiltinSource("hexagon"), FileSource("/tmp/custom.txt")} {
		back := SourceFromID(src.ID())
		if back != src {
			t.Errorf("SourceFromID(%q) = %+v, expected %+v", src.ID(), back, src)
		}
	}
}

func TestSourceLoad(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "tri.txt")
	if err := os.WriteFile(p, []byte("3 1 #.. 0"), 0o600); err != nil {
		t.Fatal(err)
	}

	cat, err := FileSource(p).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cat.Lanes != 3 || cat.Name != "tri" {
		t.Errorf("got %d lanes named %q", cat.Lanes, cat.Name)
	}

	cat, err = BuiltinSource("square").Load()
	if err != nil || cat.Lanes != 4 {
		t.Errorf("built-in source load: %v", err)
	}
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.txt":      "4 1 #... 0",
		"a.txt":      "3 1 o.. 0",
		"broken.txt": "3 0",
		"notes.md":   "ignored",
		"sub/c.txt":  "5 1 ....# 0",
	}
	for name, body := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	cats, err := NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	if len(cats) != 3 {
		t.Fatalf("expected 3 valid catalogs, got %d", len(cats))
	}
	for i, want := range []string{"a", "b", "c"} {
		if cats[i].Name != want {
			t.Errorf("cats[%d].Name = %q, expected %q", i, cats[i].Name, want)
		}
	}

	sources, err := NewLoader(dir).Sources()
	if err != nil {
		t.Fatalf("Sources failed: %v", err)
	}
	if sources[2].Path != filepath.Join(dir, "sub", "c.txt") {
		t.Errorf("Sources()[2].Path = %q", sources[2].Path)
	}
}
