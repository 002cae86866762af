// Package cli implements the umldraw command-line interface.
//
// # Commands
//
//   - render: write a draw.io class diagram (or a JSON, DOT or SVG variant)
//     for one Python file
//   - inspect: print the extracted classes, attributes, methods and
//     relations
//
// Running umldraw without a command prints usage.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// attached to the command context in PersistentPreRunE and read back with
// loggerFromContext.
//
// # Configuration
//
// Layout metrics and document header values are read from the file given
// with --config, or from $XDG_CONFIG_HOME/umldraw/layout.toml when present.
// Command-line flags override values from the file.
package cli
