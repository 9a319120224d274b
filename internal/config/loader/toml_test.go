package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
[editor]
tab_size = 4
auto_indent = true
comment = "//"

[undo]
limit = 100
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/config.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"editor.tab_size", int64(4)},
		{"editor.auto_indent", true},
		{"editor.comment", "//"},
		{"undo.limit", int64(100)},
	}
	for _, tt := range tests {
		if val, ok := getByPath(config, tt.path); !ok || val != tt.want {
			t.Errorf("%s = %v (%T), want %v", tt.path, val, val, tt.want)
		}
	}
}

func TestTOMLLoader_Missing(t *testing.T) {
	config, err := NewTOMLLoaderWithFS(NewMemFS(), "/none.toml").Load()
	if err != nil || config != nil {
		t.Errorf("Load() = %v, %v, want nil, nil", config, err)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[editor]\ntab_size = = 4\n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Load() = %v, want *ParseError", err)
	}
	if perr.Path != "/bad.toml" {
		t.Errorf("Path = %q", perr.Path)
	}
	if perr.Line != 2 {
		t.Errorf("Line = %d, want 2", perr.Line)
	}
	if errors.Unwrap(err) == nil {
		t.Error("ParseError does not wrap the decoder error")
	}
}

func TestTOMLLoader_LoadFromReader(t *testing.T) {
	config, err := NewTOMLLoader("").LoadFromReader(strings.NewReader("[cut]\nzap = true\n"))
	if err != nil {
		t.Fatal(err)
	}
	if val, ok := getByPath(config, "cut.zap"); !ok || val != true {
		t.Errorf("cut.zap = %v", val)
	}
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
		err  error
	}{
		{"a.toml", "*loader.TOMLLoader", nil},
		{"a.YAML", "*loader.YAMLLoader", nil},
		{"a.yml", "*loader.YAMLLoader", nil},
		{"a.json", "", ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		l, err := ForPath(nil, tt.path)
		if !errors.Is(err, tt.err) {
			t.Errorf("ForPath(%q) error = %v, want %v", tt.path, err, tt.err)
			continue
		}
		if err != nil {
			continue
		}
		if got := typeName(l); got != tt.want {
			t.Errorf("ForPath(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func typeName(l Loader) string {
	switch l.(type) {
	case *TOMLLoader:
		return "*loader.TOMLLoader"
	case *YAMLLoader:
		return "*loader.YAMLLoader"
	}
	return "unknown"
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"editor": map[string]any{"tab_size": 8, "comment": "#"},
		"log":    map[string]any{"level": "info"},
	}
	src := map[string]any{
		"editor": map[string]any{"tab_size": 2},
		"undo":   map[string]any{"limit": 5},
	}

	got := DeepMerge(dst, src)

	tests := []struct {
		path string
		want any
	}{
		{"editor.tab_size", 2},
		{"editor.comment", "#"},
		{"log.level", "info"},
		{"undo.limit", 5},
	}
	for _, tt := range tests {
		if val, ok := getByPath(got, tt.path); !ok || val != tt.want {
			t.Errorf("%s = %v, want %v", tt.path, val, tt.want)
		}
	}
}
