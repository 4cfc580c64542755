package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kballard/go-shellquote"
)

// ErrConfig marks a configuration that could not be loaded or validated.
var ErrConfig = errors.New("config error")

const (
	appDirName        = "fluxdir"
	configFileName    = "config.toml"
	defaultPanelRatio = 60
	minPanelRatio     = 10
	maxPanelRatio     = 90
	pathPlaceholder   = "{path}"
	unbindActionName  = "none"
)

// Mode names used as keymap tables.
const (
	ModeExplore   = "explore"
	ModeSearch    = "search"
	ModeBookmarks = "bookmarks"
)

// Config is the already-validated configuration handed to the core.
type Config struct {
	General  GeneralConfig  `toml:"general"`
	UI       UIConfig       `toml:"ui"`
	Commands CommandsConfig `toml:"commands"`
	Keymap   Keymap         `toml:"keymap"`
}

type GeneralConfig struct {
	// StartDir is used when no directory is given on the command line.
	StartDir  string   `toml:"start_dir"`
	Bookmarks []string `toml:"bookmarks"`
}

type UIConfig struct {
	ShowHidden bool `toml:"show_hidden"`
	// PanelRatio is the share of the width, in percent, given to the list.
	PanelRatio int `toml:"panel_ratio"`
}

type CommandsConfig struct {
	// Editor and Opener are command templates; "{path}" is replaced with the
	// selected file, or the path is appended when no placeholder is present.
	Editor string          `toml:"editor"`
	Opener string          `toml:"opener"`
	Custom []CustomCommand `toml:"custom"`
}

// CustomCommand binds an external command template to a key in explore mode.
type CustomCommand struct {
	Name     string `toml:"name"`
	Key      string `toml:"key"`
	Template string `toml:"template"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		UI: UIConfig{
			PanelRatio: defaultPanelRatio,
		},
		Keymap: DefaultKeymap(),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/fluxdir/config.toml (or the platform
// equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: cannot locate config directory: %v", ErrConfig, err)
	}
	return filepath.Join(dir, appDirName, configFileName), nil
}

// Load reads the TOML file at path and layers it over Default. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("%w: reading %s: %v", ErrConfig, path, err)
	}
	return Parse(string(data))
}

// Parse decodes TOML text over Default and validates the result.
func Parse(text string) (*Config, error) {
	cfg := Default()
	defaults := cfg.Keymap
	cfg.Keymap = nil

	md, err := toml.Decode(text, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys: %s", ErrConfig, strings.Join(keys, ", "))
	}

	cfg.Keymap = defaults.Merge(cfg.Keymap)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges, keymap names and command templates.
func (c *Config) Validate() error {
	if c.UI.PanelRatio < minPanelRatio || c.UI.PanelRatio > maxPanelRatio {
		return fmt.Errorf("%w: ui.panel_ratio must be between %d and %d, got %d",
			ErrConfig, minPanelRatio, maxPanelRatio, c.UI.PanelRatio)
	}
	if err := c.Keymap.validate(); err != nil {
		return err
	}
	for _, tmpl := range []struct{ name, value string }{
		{"commands.editor", c.Commands.Editor},
		{"commands.opener", c.Commands.Opener},
	} {
		if tmpl.value == "" {
			continue
		}
		if _, err := shellquote.Split(tmpl.value); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrConfig, tmpl.name, err)
		}
	}
	seen := make(map[string]struct{}, len(c.Commands.Custom))
	for i, cmd := range c.Commands.Custom {
		if strings.TrimSpace(cmd.Name) == "" || strings.TrimSpace(cmd.Template) == "" {
			return fmt.Errorf("%w: commands.custom[%d] needs a name and a template", ErrConfig, i)
		}
		if _, dup := seen[cmd.Name]; dup {
			return fmt.Errorf("%w: commands.custom: duplicate name %q", ErrConfig, cmd.Name)
		}
		seen[cmd.Name] = struct{}{}
		if _, err := shellquote.Split(cmd.Template); err != nil {
			return fmt.Errorf("%w: commands.custom %q: %v", ErrConfig, cmd.Name, err)
		}
	}
	return nil
}

// CustomCommand returns the custom command with the given name.
func (c *Config) CustomCommand(name string) (CustomCommand, bool) {
	for _, cmd := range c.Commands.Custom {
		if cmd.Name == name {
			return cmd, true
		}
	}
	return CustomCommand{}, false
}

// CustomCommandForKey returns the custom command bound to key, if any.
func (c *Config) CustomCommandForKey(key string) (CustomCommand, bool) {
	for _, cmd := range c.Commands.Custom {
		if cmd.Key != "" && keyNamesEqual(cmd.Key, key) {
			return cmd, true
		}
	}
	return CustomCommand{}, false
}

// ExpandTemplate splits a command template with shell quoting rules and
// substitutes path for every "{path}" placeholder. When the template has no
// placeholder the path is appended as the final argument.
func ExpandTemplate(template, path string) ([]string, error) {
	args, err := shellquote.Split(template)
	if err != nil {
		return nil, fmt.Errorf("parsing command %q: %w", template, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("empty command template")
	}
	substituted := false
	for i, arg := range args {
		if strings.Contains(arg, pathPlaceholder) {
			args[i] = strings.ReplaceAll(arg, pathPlaceholder, path)
			substituted = true
		}
	}
	if !substituted {
		args = append(args, path)
	}
	return args, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
