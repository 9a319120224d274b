package loader

import (
	"errors"
	"strings"
	"testing"
)

func TestYAMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.yaml", `
editor:
  tab_size: 2
  tabs_to_spaces: true
cut:
  zap: true
log:
  level: warn
`)

	config, err := NewYAMLLoaderWithFS(memfs, "/config.yaml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"editor.tab_size", 2},
		{"editor.tabs_to_spaces", true},
		{"cut.zap", true},
		{"log.level", "warn"},
	}
	for _, tt := range tests {
		if val, ok := getByPath(config, tt.path); !ok || val != tt.want {
			t.Errorf("%s = %v (%T), want %v", tt.path, val, val, tt.want)
		}
	}
}

func TestYAMLLoader_ParseError(t *testing.T) {
	_, err := NewYAMLLoader("").LoadFromReader(strings.NewReader("editor:\n  tab_size: [1, 2\n"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("LoadFromReader() = %v, want *ParseError", err)
	}
	if perr.Line == 0 {
		t.Errorf("Line not reported: %v", perr)
	}
}
