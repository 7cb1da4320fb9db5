package shellfie

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the syntax from a file extension; anything that is not
// ".toml" is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

type rawConfig struct {
	Theme     *string       `yaml:"theme" toml:"theme"`
	Title     *string       `yaml:"title" toml:"title"`
	Window    *rawWindow    `yaml:"window" toml:"window"`
	Font      *rawFont      `yaml:"font" toml:"font"`
	Animation *rawAnimation `yaml:"animation" toml:"animation"`
	Headless  bool          `yaml:"headless" toml:"headless"`
	Lines     []rawLine     `yaml:"lines" toml:"lines"`
	Frames    []rawFrame    `yaml:"frames" toml:"frames"`
}

type rawWindow struct {
	Width   *int     `yaml:"width" toml:"width"`
	Padding *int     `yaml:"padding" toml:"padding"`
	Opacity *float64 `yaml:"opacity" toml:"opacity"`
}

type rawFont struct {
	Family     *string  `yaml:"family" toml:"family"`
	Size       *int     `yaml:"size" toml:"size"`
	LineHeight *float64 `yaml:"line_height" toml:"line_height"`
}

type rawAnimation struct {
	TypingSpeed  *int  `yaml:"typing_speed" toml:"typing_speed"`
	CommandDelay *int  `yaml:"command_delay" toml:"command_delay"`
	CursorBlink  *bool `yaml:"cursor_blink" toml:"cursor_blink"`
	Loop         *bool `yaml:"loop" toml:"loop"`
}

type rawLine struct {
	Prompt  *string `yaml:"prompt" toml:"prompt"`
	Command *string `yaml:"command" toml:"command"`
	Output  *string `yaml:"output" toml:"output"`
}

type rawFrame struct {
	Prompt  string `yaml:"prompt" toml:"prompt"`
	Type    string `yaml:"type" toml:"type"`
	Output  string `yaml:"output" toml:"output"`
	Delay   int    `yaml:"delay" toml:"delay"`
	Instant bool   `yaml:"instant" toml:"instant"`
}

// LoadConfig reads, decodes and validates a configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, parseError("load", nil, "configuration file not found: %s", path)
		}
		return nil, parseError("load", err, "cannot read %s", path)
	}
	return ParseConfig(data, FormatFromPath(path))
}

// ParseConfig decodes and validates a configuration document.
func ParseConfig(data []byte, format Format) (*Config, error) {
	var (
		raw   rawConfig
		empty bool
		err   error
	)
	switch format {
	case FormatTOML:
		empty, err = decodeTOML(data, &raw)
	default:
		empty, err = decodeYAML(data, &raw)
	}
	if err != nil {
		return nil, err
	}
	if empty {
		return nil, validationError("empty configuration")
	}

	cfg, err := raw.build()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeYAML(data []byte, raw *rawConfig) (bool, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return false, parseError("decode", err, "invalid YAML syntax")
	}
	if len(doc.Content) == 0 {
		return true, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return true, nil
	}
	if root.Kind != yaml.MappingNode {
		return false, parseError("decode", nil, "configuration must be a mapping, line %d", root.Line)
	}
	if len(root.Content) == 0 {
		return true, nil
	}
	if err := root.Decode(raw); err != nil {
		return false, parseError("decode", err, "invalid configuration")
	}
	return false, nil
}

func decodeTOML(data []byte, raw *rawConfig) (bool, error) {
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(raw)
	if err != nil {
		return false, parseError("decode", err, "invalid TOML syntax")
	}
	return len(md.Keys()) == 0, nil
}

func (r *rawConfig) build() (*Config, error) {
	cfg := DefaultConfig()
	if r.Theme != nil {
		cfg.Theme = *r.Theme
	}
	if r.Title != nil {
		cfg.Title = *r.Title
	}
	cfg.Headless = r.Headless

	if w := r.Window; w != nil {
		setIfPresent(&cfg.Window.Width, w.Width)
		setIfPresent(&cfg.Window.Padding, w.Padding)
		setIfPresent(&cfg.Window.Opacity, w.Opacity)
	}
	if f := r.Font; f != nil {
		setIfPresent(&cfg.Font.Family, f.Family)
		setIfPresent(&cfg.Font.Size, f.Size)
		setIfPresent(&cfg.Font.LineHeight, f.LineHeight)
	}
	if a := r.Animation; a != nil {
		setIfPresent(&cfg.Animation.TypingSpeed, a.TypingSpeed)
		setIfPresent(&cfg.Animation.CommandDelay, a.CommandDelay)
		setIfPresent(&cfg.Animation.CursorBlink, a.CursorBlink)
		setIfPresent(&cfg.Animation.Loop, a.Loop)
	}

	for i, l := range r.Lines {
		lines, err := l.lines()
		if err != nil {
			return nil, validationError("line %d: %v", i+1, err)
		}
		cfg.Lines = append(cfg.Lines, lines...)
	}
	for _, f := range r.Frames {
		cfg.Frames = append(cfg.Frames, Frame(f))
	}
	return cfg, nil
}

// lines maps one file entry onto the Line union. An entry carrying both a
// prompt/command and an output expands to a command row followed by output.
func (l rawLine) lines() ([]Line, error) {
	var out []Line
	if l.Prompt != nil || l.Command != nil {
		out = append(out, CommandLine{Prompt: deref(l.Prompt), Command: deref(l.Command)})
	}
	if l.Output != nil {
		out = append(out, OutputLine{Text: *l.Output})
	}
	if len(out) == 0 {
		return nil, errors.New("needs 'prompt'/'command' or 'output'")
	}
	return out, nil
}

func setIfPresent[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
