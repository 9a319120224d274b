// Package config loads Linestorm settings.
//
// Settings come from three sources, later ones overriding earlier ones:
//
//  1. Built-in defaults
//  2. A config file, TOML or YAML by extension
//  3. Environment variables prefixed LINESTORM_
//
// A TOML file looks like:
//
//	[editor]
//	tab_size = 4
//	auto_indent = true
//	comment = "//"
//
//	[cut]
//	from_cursor = true
//	clipboard = true
//
//	[undo]
//	limit = 1000
//
//	[log]
//	level = "debug"
//
// The same setting is read from LINESTORM_EDITOR_TAB_SIZE. The first word
// after the prefix names the section and the rest the setting. A few
// settings have short names: LINESTORM_TAB_SIZE, LINESTORM_NO_NEWLINES,
// LINESTORM_ZAP, LINESTORM_CLIPBOARD, and LINESTORM_UNDO_LIMIT.
//
// # Sub-packages
//
//   - loader: file and environment loading into setting maps
//   - watcher: file watching for live reload
//
// # Live Reload
//
// Source.Watch reloads the file whenever it changes:
//
//	src := config.Source{Path: path, EnvPrefix: config.EnvPrefix}
//	w, err := src.Watch(ctx, func(opts config.Options, err error) {
//		if err == nil {
//			eng.ApplyOptions(opts.Buffer())
//		}
//	})
//	defer w.Close()
package config
