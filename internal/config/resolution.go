package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	appName = "copyproblem"

	// EnvConfig names an explicit settings file.
	EnvConfig = "COPYPROBLEM_CONFIG"
)

// localNames are checked in the working directory, in order.
var localNames = []string{".copyproblem.yaml", ".copyproblem.yml", ".copyproblem.toml"}

// Path resolves the settings file location with explicit priority order:
//
//  1. COPYPROBLEM_CONFIG
//  2. .copyproblem.{yaml,yml,toml} in the working directory, if present
//  3. <user config dir>/copyproblem/config.yaml
//
// The returned path may not exist yet; it is where Save writes.
func Path(fs afero.Fs) string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	for _, name := range localNames {
		if ok, _ := afero.Exists(fs, name); ok {
			return name
		}
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appName, "config.yaml")
	}
	return localNames[0]
}

// Overrides carries command-line values. A field applies only when its
// Set flag is true.
type Overrides struct {
	UseRelativePath    bool
	UseRelativePathSet bool

	ProximityThreshold    int
	ProximityThresholdSet bool

	ProjectRoot    string
	ProjectRootSet bool

	Theme    string
	ThemeSet bool
}

// Resolved is the effective configuration plus where each overridable
// value came from ("cli", "file" or "default").
type Resolved struct {
	Settings Settings
	Path     string

	RelativeSource  string
	ThresholdSource string
	RootSource      string
	ThemeSource     string
}

// Resolve loads the settings file and applies CLI overrides on top.
func Resolve(fs afero.Fs, o Overrides) (*Resolved, error) {
	path := Path(fs)
	s, err := Load(fs, path)
	if err != nil {
		return nil, err
	}
	src := "default"
	if ok, _ := afero.Exists(fs, path); ok {
		src = "file"
	}
	r := &Resolved{
		Settings:        s,
		Path:            path,
		RelativeSource:  src,
		ThresholdSource: src,
		RootSource:      src,
		ThemeSource:     src,
	}

	if o.UseRelativePathSet {
		r.Settings.UseRelativePath = o.UseRelativePath
		r.RelativeSource = "cli"
	}
	if o.ProximityThresholdSet {
		r.Settings.ProximityThreshold = o.ProximityThreshold
		r.ThresholdSource = "cli"
	}
	if o.ProjectRootSet {
		r.Settings.ProjectRoot = o.ProjectRoot
		r.RootSource = "cli"
	}
	if o.ThemeSet {
		r.Settings.Theme = o.Theme
		r.ThemeSource = "cli"
	}

	if err := r.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return r, nil
}
