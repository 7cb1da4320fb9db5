package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/danielgatis/go-shellfie"
)

// Version information (can be overridden at build time)
var Version = "0.1.0"

const usageText = `Shellfie - Terminal screenshot-style image generator

Usage: shellfie <command> [options]

Commands:
  generate, g  Generate image from configuration file
  init         Output sample configuration
  themes       List available themes
  validate     Validate configuration file
  version      Show version
  help         Show this help

Generate Options:
  -o, --output PATH         Output file path (required)
  -t, --theme NAME          Override theme (macos, ubuntu, windows)
  -a, --animate             Generate animated GIF
  -s, --scale FACTOR        Output scale (1, 2, 3)
  -w, --width PIXELS        Override width
  -r, --rasterizer NAME     Backend: image (default), magick, json
  --font PATH               TrueType/OpenType font for the image backend
  --no-shadow               Disable shadow effect
  --no-header               Disable window header (headless mode)
  --transparent             Transparent background
  --watch                   Regenerate whenever the configuration changes
  --verbose                 Log progress to stderr

Examples:
  shellfie generate config.yml -o terminal.png
  shellfie generate config.yml -o demo.gif --animate
  shellfie generate config.yml -o retina.png --scale 2
  shellfie generate config.toml -o scene.json -r json
  shellfie init > my-config.yml
  shellfie themes
`

// sampleConfig is printed by "shellfie init".
var sampleConfig = `# Shellfie configuration file
theme: macos
title: "Terminal — zsh"

window:
  width: 600
  padding: 20

lines:
  - prompt: "$ "
    command: "go install github.com/danielgatis/go-shellfie/cmd/shellfie@latest"

  - output: |
      go: downloading github.com/danielgatis/go-shellfie v` + Version + `

  - prompt: "$ "
    command: "shellfie --version"

  - output: "shellfie ` + Version + `"
`

// App runs CLI commands against the given streams.
type App struct {
	Stdout io.Writer
	Stderr io.Writer

	// newRasterizer builds the backend named by --rasterizer.
	newRasterizer func(args Args) (shellfie.Rasterizer, error)
}

// NewApp creates an App writing to stdout and stderr.
func NewApp(stdout, stderr io.Writer) *App {
	return &App{Stdout: stdout, Stderr: stderr, newRasterizer: newRasterizer}
}

// Run executes argv (without the program name) and returns the exit status.
func (a *App) Run(ctx context.Context, argv []string) int {
	cmd, args, err := Parse(argv)
	if err != nil {
		return a.fail(usageError(err.Error()))
	}

	switch cmd {
	case CmdGenerate:
		err = a.runGenerate(ctx, args)
	case CmdInit:
		fmt.Fprint(a.Stdout, sampleConfig)
	case CmdThemes:
		a.runThemes()
	case CmdValidate:
		err = a.runValidate(args)
	case CmdVersion:
		fmt.Fprintf(a.Stdout, "shellfie %s\n", Version)
	case CmdHelp:
		fmt.Fprint(a.Stdout, usageText)
	case CmdUnknown:
		fmt.Fprintf(a.Stdout, "Unknown command: %s\n", args.Name)
		fmt.Fprintln(a.Stdout, HintStyle.Render("Run 'shellfie help' for usage information."))
		return ExitGeneralError
	}
	return a.fail(err)
}

func (a *App) fail(err error) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintf(a.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), err)
	return ExitCode(err)
}

func (a *App) runGenerate(ctx context.Context, args Args) error {
	if len(args.Positional) == 0 {
		return usageError("input file is required")
	}
	if args.Output == "" {
		return usageError("output file is required (use -o option)")
	}
	input := args.Positional[0]

	rasterizer, err := a.newRasterizer(args)
	if err != nil {
		return err
	}

	opts := []shellfie.Option{
		shellfie.WithRasterizer(rasterizer),
		shellfie.WithShadow(!args.NoShadow),
		shellfie.WithTransparent(args.Transparent),
		shellfie.WithHeadless(args.NoHeader),
	}
	if args.Scale > 0 {
		opts = append(opts, shellfie.WithScale(args.Scale))
	}
	if args.Verbose {
		logger := log.New(a.Stderr, "shellfie: ", 0)
		opts = append(opts,
			shellfie.WithLogger(logger),
			shellfie.WithProgress(shellfie.LogProgress{Logger: logger}))
	}
	renderer := shellfie.NewRenderer(opts...)

	generate := func() error {
		cfg, err := shellfie.LoadConfig(input)
		if err != nil {
			return err
		}
		applyOverrides(cfg, args)
		if err := renderer.Generate(ctx, cfg, args.Output, args.Animate); err != nil {
			return err
		}
		fmt.Fprintf(a.Stdout, "%s %s\n", SuccessStyle.Render("Generated:"), args.Output)
		return nil
	}

	if err := generate(); err != nil {
		if !args.Watch {
			return err
		}
		a.fail(err)
	}
	if !args.Watch {
		return nil
	}

	fmt.Fprintln(a.Stdout, HintStyle.Render("Watching "+input+" for changes (Ctrl+C to stop)"))
	return watchFile(ctx, input, defaultDebounce, func() {
		if err := generate(); err != nil {
			a.fail(err)
		}
	})
}

// applyOverrides applies the command-line overrides on top of a loaded config.
func applyOverrides(cfg *shellfie.Config, args Args) {
	if args.Theme != "" {
		cfg.Theme = args.Theme
	}
	if args.Width > 0 {
		cfg.Window.Width = args.Width
	}
	if args.NoHeader {
		cfg.Headless = true
	}
}

func newRasterizer(args Args) (shellfie.Rasterizer, error) {
	switch args.Rasterizer {
	case "magick":
		return shellfie.NewMagickRasterizer(), nil
	case "json":
		return shellfie.JSONRasterizer{}, nil
	}

	var opts []shellfie.ImageOption
	if args.Font != "" {
		data, err := os.ReadFile(args.Font)
		if err != nil {
			return nil, usageError(fmt.Sprintf("cannot read font: %v", err))
		}
		opts = append(opts, shellfie.WithFontData(data))
	} else {
		opts = append(opts, shellfie.WithFontFinder(shellfie.SystemFontFinder()))
	}
	return shellfie.NewImageRasterizer(opts...), nil
}

func (a *App) runThemes() {
	fmt.Fprintln(a.Stdout, TitleStyle.Render("Available themes:"))
	fmt.Fprintln(a.Stdout)
	for _, name := range shellfie.ThemeNames() {
		theme, _ := shellfie.ThemeByName(name)
		var buttons strings.Builder
		for _, c := range theme.Buttons {
			buttons.WriteString(swatch(string(c)))
		}
		fmt.Fprintf(a.Stdout, "  %s %s %s\n", NameStyle.Render(name), buttons.String(), ValueStyle.Render(theme.Description))
	}
	fmt.Fprintln(a.Stdout)
	fmt.Fprintln(a.Stdout, HintStyle.Render("Use: shellfie generate config.yml -o output.png -t THEME_NAME"))
}

func (a *App) runValidate(args Args) error {
	if len(args.Positional) == 0 {
		return usageError("input file is required")
	}
	cfg, err := shellfie.LoadConfig(args.Positional[0])
	if err != nil {
		return err
	}

	mode := "static"
	if cfg.Animated() {
		mode = "animated"
	}
	fmt.Fprintln(a.Stdout, SuccessStyle.Render("✓ Configuration is valid"))
	field := func(label, value string) {
		fmt.Fprintf(a.Stdout, "  %s %s\n", LabelStyle.Render(label+":"), ValueStyle.Render(value))
	}
	field("Theme", cfg.Theme)
	field("Title", cfg.Title)
	field("Lines", fmt.Sprint(len(cfg.Lines)))
	if cfg.Animated() {
		field("Frames", fmt.Sprint(len(cfg.Frames)))
	}
	field("Mode", mode)
	return nil
}
