package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/linestorm/internal/config/loader"
	"github.com/dshills/linestorm/internal/engine/buffer"
	"github.com/dshills/linestorm/internal/logging"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "LINESTORM_"

// Options is the complete Linestorm configuration.
type Options struct {
	Editor EditorOptions `toml:"editor" yaml:"editor"`
	Cut    CutOptions    `toml:"cut" yaml:"cut"`
	Undo   UndoOptions   `toml:"undo" yaml:"undo"`
	Log    LogOptions    `toml:"log" yaml:"log"`
	Debug  DebugOptions  `toml:"debug" yaml:"debug"`
}

// EditorOptions configures typing and indentation.
type EditorOptions struct {
	TabSize      int    `toml:"tab_size" yaml:"tab_size"`
	TabsToSpaces bool   `toml:"tabs_to_spaces" yaml:"tabs_to_spaces"`
	AutoIndent   bool   `toml:"auto_indent" yaml:"auto_indent"`
	NoNewlines   bool   `toml:"no_newlines" yaml:"no_newlines"`
	Comment      string `toml:"comment" yaml:"comment"`
}

// CutOptions configures cutting and pasting.
type CutOptions struct {
	FromCursor bool `toml:"from_cursor" yaml:"from_cursor"`
	Zap        bool `toml:"zap" yaml:"zap"`
	Clipboard  bool `toml:"clipboard" yaml:"clipboard"`
}

// UndoOptions configures the undo history.
type UndoOptions struct {
	// Limit caps the number of undo records; 0 means unlimited.
	Limit int `toml:"limit" yaml:"limit"`
}

// LogOptions configures logging.
type LogOptions struct {
	Level string `toml:"level" yaml:"level"`
}

// DebugOptions holds developer settings.
type DebugOptions struct {
	CheckInvariants bool `toml:"check_invariants" yaml:"check_invariants"`
}

// Default returns the built-in configuration.
func Default() Options {
	b := buffer.DefaultOptions()
	return Options{
		Editor: EditorOptions{
			TabSize: b.TabSize,
			Comment: b.CommentSeq,
		},
		Log: LogOptions{Level: "info"},
	}
}

// Buffer returns the editing options for buffers.
func (o Options) Buffer() buffer.Options {
	return buffer.Options{
		NoNewlines:      o.Editor.NoNewlines,
		CutFromCursor:   o.Cut.FromCursor,
		LetThemZap:      o.Cut.Zap,
		TabSize:         o.Editor.TabSize,
		TabsToSpaces:    o.Editor.TabsToSpaces,
		AutoIndent:      o.Editor.AutoIndent,
		CommentSeq:      o.Editor.Comment,
		UndoLimit:       o.Undo.Limit,
		CheckInvariants: o.Debug.CheckInvariants,
	}
}

// LogLevel returns the configured log level.
func (o Options) LogLevel() logging.Level {
	return logging.ParseLevel(o.Log.Level)
}

// Validate checks that every setting is in range.
func (o Options) Validate() error {
	if o.Editor.TabSize < 1 || o.Editor.TabSize > 64 {
		return fmt.Errorf("%w: editor.tab_size must be between 1 and 64, got %d", ErrValidationFailed, o.Editor.TabSize)
	}
	if o.Undo.Limit < 0 {
		return fmt.Errorf("%w: undo.limit must not be negative, got %d", ErrValidationFailed, o.Undo.Limit)
	}
	if strings.Count(o.Editor.Comment, "|") > 1 {
		return fmt.Errorf("%w: editor.comment has more than one '|': %q", ErrValidationFailed, o.Editor.Comment)
	}
	switch strings.ToLower(o.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log.level %q is not debug, info, warn, or error", ErrValidationFailed, o.Log.Level)
	}
	return nil
}

// Source describes where configuration is read from. Later sources
// override earlier ones: defaults, then the file, then the environment.
type Source struct {
	// Path is the config file. Empty means no file. A missing file is not
	// an error.
	Path string

	// EnvPrefix selects environment variables. Empty disables them.
	EnvPrefix string

	// FS reads the file. Nil means the OS file system.
	FS loader.FileSystem
}

// Load reads the file at path and the LINESTORM_ environment variables on
// top of the defaults.
func Load(path string) (Options, error) {
	return Source{Path: path, EnvPrefix: EnvPrefix}.Load()
}

// Load reads every source and returns the validated result.
func (s Source) Load() (Options, error) {
	merged := make(map[string]any)

	if s.Path != "" {
		l, err := loader.ForPath(s.FS, s.Path)
		if err != nil {
			return Options{}, err
		}
		data, err := l.Load()
		if err != nil {
			return Options{}, err
		}
		merged = loader.DeepMerge(merged, data)
	}

	if s.EnvPrefix != "" {
		data, err := loader.NewEnvLoader(s.EnvPrefix).Load()
		if err != nil {
			return Options{}, fmt.Errorf("environment: %w", err)
		}
		merged = loader.DeepMerge(merged, data)
	}

	opts, err := decode(merged)
	if err != nil {
		return Options{}, err
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// decode applies a merged settings map on top of the defaults.
func decode(settings map[string]any) (Options, error) {
	opts := Default()
	if len(settings) == 0 {
		return opts, nil
	}

	data, err := toml.Marshal(settings)
	if err != nil {
		return Options{}, fmt.Errorf("encoding settings: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&opts); err != nil {
		return Options{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return opts, nil
}
