// Package config handles settings loading, persistence and distribution
// for copyproblem.
//
// # Configuration Precedence
//
// Settings are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--relative, --threshold, --theme, etc.)
//  2. Settings file (COPYPROBLEM_CONFIG, .copyproblem.yaml or .copyproblem.toml
//     in the working directory, or ~/.config/copyproblem/config.yaml)
//  3. Hardcoded defaults (struct tags on Settings)
//
// The file format follows the extension: .toml files are TOML, anything
// else is YAML.
//
// # Key Settings
//
//   - format_pattern: template for a single problem ({file} {description} {line})
//   - format_pattern_multiple: header for a file's problem list ({file} {problems})
//   - format_pattern_problem_item: one list entry ({index} {description} {line})
//   - use_relative_path: label files relative to project_root instead of by name
//   - hide_standard_copy_action: drop "Copy Problem Description" from the panel menu
//   - proximity_threshold: characters searched around the cursor when no
//     diagnostic contains it
//
// # Lifecycle
//
// Settings are loaded once at start-up into a Store. Each command reads one
// Snapshot when it starts; Store.Apply saves new settings and notifies
// listeners before returning.
//
// # Environment Variables
//
//   - COPYPROBLEM_CONFIG: explicit settings file path
//   - COPYPROBLEM_LOG_LEVEL: log level (trace, debug, info, warn, error)
package config
