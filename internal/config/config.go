// Package config loads ipycell settings from TOML
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/itsmostafa/ipycell/internal/dispatch"
)

//go:embed ipycell.default.toml
var defaultConfigTOML []byte

// FileName is the config file looked up in the working directory
const FileName = "ipycell.toml"

// Config holds all ipycell configuration
type Config struct {
	Marker      string            `toml:"marker"`
	Language    string            `toml:"language"`
	Clipboard   string            `toml:"clipboard"`
	Session     SessionConfig     `toml:"session"`
	Interactive InteractiveConfig `toml:"interactive"`
	Debug       DebugConfig       `toml:"debug"`
	Files       FilesConfig       `toml:"files"`
	Editor      EditorConfig      `toml:"editor"`
}

// SessionConfig controls how the interpreter terminal is found and started
type SessionConfig struct {
	Label         string `toml:"label"`
	Match         string `toml:"match"`
	LaunchCommand string `toml:"launch_command"`
	TmuxSession   string `toml:"tmux_session"`
}

// InteractiveConfig controls delivery to IPython
type InteractiveConfig struct {
	CellTransport        string   `toml:"cell_transport"`
	PasteCommand         string   `toml:"paste_command"`
	RunCommand           string   `toml:"run_command"`
	PasteTerminatorDelay Duration `toml:"paste_terminator_delay"`
}

// DebugConfig controls delivery to the debugger
type DebugConfig struct {
	Transport       string   `toml:"transport"`
	SourceCommand   string   `toml:"source_command"`
	TerminatorDelay Duration `toml:"terminator_delay"`
	LineDelay       Duration `toml:"line_delay"`
}

// FilesConfig controls temp-file dispatch
type FilesConfig struct {
	ScratchDir   string   `toml:"scratch_dir"`
	SourcePrefix string   `toml:"source_prefix"`
	RunPrefix    string   `toml:"run_prefix"`
	CleanupDelay Duration `toml:"cleanup_delay"`
}

// EditorConfig controls returning focus to the editor
type EditorConfig struct {
	RefocusDelay Duration `toml:"refocus_delay"`
}

// Duration is a time.Duration written as a string like "100ms"
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the embedded default configuration
func Default() Config {
	var cfg Config
	if err := toml.Unmarshal(defaultConfigTOML, &cfg); err != nil {
		panic("embedded default config is invalid: " + err.Error())
	}
	return cfg
}

// Paths returns the candidate config files in lookup order
func Paths(explicit string) []string {
	var paths []string
	for _, c := range candidates(explicit) {
		paths = append(paths, c.path)
	}
	return paths
}

type candidate struct {
	path string
	// required paths were named by the user and must exist
	required bool
}

func candidates(explicit string) []candidate {
	var cs []candidate
	if explicit != "" {
		cs = append(cs, candidate{path: explicit, required: true})
	}
	if env := os.Getenv("IPYCELL_CONFIG"); env != "" {
		cs = append(cs, candidate{path: env, required: true})
	}
	cs = append(cs, candidate{path: FileName})
	if home, err := os.UserHomeDir(); err == nil {
		cs = append(cs, candidate{path: filepath.Join(home, ".config", "ipycell", FileName)})
	}
	return cs
}

// Load reads the first config file found, layered over the defaults, then
// applies environment overrides. A path named by --config or
// $IPYCELL_CONFIG that does not exist is an error; the default locations
// are skipped when missing.
func Load(explicit string) (Config, string, error) {
	cfg := Default()
	source := "<default>"

	for _, c := range candidates(explicit) {
		data, err := os.ReadFile(c.path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) && !c.required {
				continue
			}
			return Config{}, "", fmt.Errorf("failed to read config %s: %w", c.path, err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, "", fmt.Errorf("failed to parse config %s: %w", c.path, err)
		}
		source = c.path
		break
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, "", fmt.Errorf("invalid config %s: %w", source, err)
	}
	return cfg, source, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("IPYCELL_SESSION"); v != "" {
		c.Session.Match = v
		c.Session.Label = v
	}
	if v := os.Getenv("IPYCELL_CLIPBOARD"); v != "" {
		c.Clipboard = v
	}
}

// Validate checks enumerated fields
func (c *Config) Validate() error {
	if c.Marker == "" {
		return errors.New("marker must not be empty")
	}
	if _, err := dispatch.ParseTransport(c.Interactive.CellTransport); err != nil {
		return fmt.Errorf("interactive.cell_transport: %w", err)
	}

	debug, err := dispatch.ParseTransport(c.Debug.Transport)
	if err != nil {
		return fmt.Errorf("debug.transport: %w", err)
	}
	if debug == dispatch.TransportPaste {
		return errors.New("debug.transport: paste is not supported by the debugger")
	}

	switch c.Clipboard {
	case "system", "osc52":
	default:
		return fmt.Errorf("clipboard: unknown backend %q (valid options: system, osc52)", c.Clipboard)
	}
	return nil
}

// DispatchOptions maps the config onto dispatch.Options. The clipboard is
// built by the caller since it depends on the controlling terminal.
func (c Config) DispatchOptions() dispatch.Options {
	return dispatch.Options{
		PasteCommand:         c.Interactive.PasteCommand,
		PasteTerminatorDelay: c.Interactive.PasteTerminatorDelay.Duration,
		DebugTerminatorDelay: c.Debug.TerminatorDelay.Duration,
		DebugLineDelay:       c.Debug.LineDelay.Duration,
		ScratchDir:           c.Files.ScratchDir,
		SourcePrefix:         c.Files.SourcePrefix,
		RunPrefix:            c.Files.RunPrefix,
		SourceCommand:        c.Debug.SourceCommand,
		RunCommand:           c.Interactive.RunCommand,
		CleanupDelay:         c.Files.CleanupDelay.Duration,
		CellTransport:        dispatch.Transport(c.Interactive.CellTransport),
		DebugTransport:       dispatch.Transport(c.Debug.Transport),
	}
}
