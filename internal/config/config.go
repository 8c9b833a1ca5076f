package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/creasty/defaults"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/dkoosis/copyproblem/pkg/format"
)

// Settings is the persisted user configuration.
type Settings struct {
	UseRelativePath          bool   `yaml:"use_relative_path" toml:"use_relative_path" default:"false"`
	FormatPattern            string `yaml:"format_pattern" toml:"format_pattern"`
	FormatPatternMultiple    string `yaml:"format_pattern_multiple" toml:"format_pattern_multiple"`
	FormatPatternProblemItem string `yaml:"format_pattern_problem_item" toml:"format_pattern_problem_item"`
	HideStandardCopyAction   bool   `yaml:"hide_standard_copy_action" toml:"hide_standard_copy_action" default:"false"`

	ProximityThreshold int    `yaml:"proximity_threshold" toml:"proximity_threshold" default:"100"`
	ClipboardSettleMS  int    `yaml:"clipboard_settle_ms" toml:"clipboard_settle_ms" default:"100"`
	ProjectRoot        string `yaml:"project_root,omitempty" toml:"project_root,omitempty"`
	LineHeuristics     bool   `yaml:"line_heuristics" toml:"line_heuristics" default:"true"`
	Theme              string `yaml:"theme" toml:"theme" default:"default"`
}

// SetDefaults fills the templates; called by defaults.Set after the tag
// defaults are applied.
func (s *Settings) SetDefaults() {
	if s.FormatPattern == "" {
		s.FormatPattern = format.DefaultPattern
	}
	if s.FormatPatternMultiple == "" {
		s.FormatPatternMultiple = format.DefaultPatternMultiple
	}
	if s.FormatPatternProblemItem == "" {
		s.FormatPatternProblemItem = format.DefaultPatternProblemItem
	}
}

// Default returns the built-in settings.
func Default() Settings {
	var s Settings
	if err := defaults.Set(&s); err != nil {
		// Only reachable with a malformed struct tag.
		panic(fmt.Sprintf("config: bad defaults: %v", err))
	}
	return s
}

// Templates returns the formatting templates.
func (s Settings) Templates() format.Templates {
	return format.Templates{
		Single:   s.FormatPattern,
		Multiple: s.FormatPatternMultiple,
		Item:     s.FormatPatternProblemItem,
	}
}

// ClipboardSettle is the wait after delegating a copy before the
// clipboard is read back.
func (s Settings) ClipboardSettle() time.Duration {
	return time.Duration(s.ClipboardSettleMS) * time.Millisecond
}

// Validate reports settings that cannot be used.
func (s Settings) Validate() error {
	if s.ProximityThreshold <= 0 {
		return fmt.Errorf("proximity_threshold must be positive, got %d", s.ProximityThreshold)
	}
	if s.ClipboardSettleMS < 0 {
		return fmt.Errorf("clipboard_settle_ms must not be negative, got %d", s.ClipboardSettleMS)
	}
	return nil
}

// Load reads settings from path on fs. A missing file yields the
// defaults. Keys absent from the file keep their default values; empty
// templates are restored to the defaults.
func Load(fs afero.Fs, path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return Default(), fmt.Errorf("read settings %s: %w", path, err)
	}
	if err := decode(path, data, &s); err != nil {
		return Default(), fmt.Errorf("parse settings %s: %w", path, err)
	}
	s.SetDefaults()
	if err := s.Validate(); err != nil {
		return Default(), fmt.Errorf("settings %s: %w", path, err)
	}
	return s, nil
}

// Save writes settings to path on fs, creating parent directories.
func Save(fs afero.Fs, path string, s Settings) error {
	if path == "" {
		return fmt.Errorf("save settings: no path")
	}
	data, err := encode(path, s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write settings %s: %w", path, err)
	}
	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func decode(path string, data []byte, s *Settings) error {
	if isTOML(path) {
		_, err := toml.Decode(string(data), s)
		return err
	}
	return yaml.Unmarshal(data, s)
}

func encode(path string, s Settings) ([]byte, error) {
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(s); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return yaml.Marshal(s)
}
