package main

import (
	"fmt"
	"strconv"
	"strings"
)

// Command is the CLI command to execute.
type Command int

const (
	CmdHelp Command = iota
	CmdGenerate
	CmdInit
	CmdThemes
	CmdValidate
	CmdVersion
	CmdUnknown
)

// Args holds parsed CLI arguments.
type Args struct {
	// Name is the command as typed, kept for error messages.
	Name string

	// Positional arguments after the command.
	Positional []string

	// generate
	Output      string
	Theme       string
	Animate     bool
	Scale       float64
	Width       int
	NoShadow    bool
	Transparent bool
	NoHeader    bool
	Rasterizer  string
	Font        string
	Watch       bool

	// global
	Verbose bool
}

// flagSpec declares one option. Value flags consume the next argument or an
// "=value" suffix; the rest are booleans.
type flagSpec struct {
	long  string
	short string
	value bool
	set   func(a *Args, v string) error
}

var generateFlags = []flagSpec{
	{long: "output", short: "o", value: true, set: func(a *Args, v string) error { a.Output = v; return nil }},
	{long: "theme", short: "t", value: true, set: func(a *Args, v string) error { a.Theme = v; return nil }},
	{long: "animate", short: "a", set: func(a *Args, _ string) error { a.Animate = true; return nil }},
	{long: "scale", short: "s", value: true, set: func(a *Args, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("invalid scale %q: must be a positive number", v)
		}
		a.Scale = f
		return nil
	}},
	{long: "width", short: "w", value: true, set: func(a *Args, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid width %q: must be a positive integer", v)
		}
		a.Width = n
		return nil
	}},
	{long: "no-shadow", set: func(a *Args, _ string) error { a.NoShadow = true; return nil }},
	{long: "transparent", set: func(a *Args, _ string) error { a.Transparent = true; return nil }},
	{long: "no-header", set: func(a *Args, _ string) error { a.NoHeader = true; return nil }},
	{long: "rasterizer", short: "r", value: true, set: func(a *Args, v string) error {
		switch v {
		case "image", "magick", "json":
			a.Rasterizer = v
			return nil
		}
		return fmt.Errorf("invalid rasterizer %q: use image, magick or json", v)
	}},
	{long: "font", value: true, set: func(a *Args, v string) error { a.Font = v; return nil }},
	{long: "watch", set: func(a *Args, _ string) error { a.Watch = true; return nil }},
}

var globalFlags = []flagSpec{
	{long: "verbose", set: func(a *Args, _ string) error { a.Verbose = true; return nil }},
}

// Parse resolves the command and its arguments. An error means the
// arguments could not be understood.
func Parse(argv []string) (Command, Args, error) {
	var args Args
	if len(argv) == 0 {
		return CmdHelp, args, nil
	}

	args.Name = argv[0]
	rest := argv[1:]

	var cmd Command
	flags := globalFlags
	switch strings.ToLower(argv[0]) {
	case "generate", "g":
		cmd = CmdGenerate
		flags = append(append([]flagSpec(nil), generateFlags...), globalFlags...)
	case "init":
		cmd = CmdInit
	case "themes":
		cmd = CmdThemes
	case "validate":
		cmd = CmdValidate
	case "version", "-v", "--version":
		return CmdVersion, args, nil
	case "help", "-h", "--help":
		return CmdHelp, args, nil
	default:
		return CmdUnknown, args, nil
	}

	positional, err := parseFlags(rest, flags, &args)
	if err != nil {
		return cmd, args, err
	}
	args.Positional = positional
	return cmd, args, nil
}

func parseFlags(argv []string, specs []flagSpec, args *Args) ([]string, error) {
	var positional []string
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		if arg == "--" {
			return append(positional, argv[i+1:]...), nil
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positional = append(positional, arg)
			continue
		}

		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		spec, ok := lookupFlag(specs, name, strings.HasPrefix(arg, "--"))
		if !ok {
			return nil, fmt.Errorf("unknown option: %s", arg)
		}
		if spec.value && !hasValue {
			if i+1 >= len(argv) {
				return nil, fmt.Errorf("option %s requires a value", arg)
			}
			i++
			value = argv[i]
		}
		if !spec.value && hasValue {
			return nil, fmt.Errorf("option %s does not take a value", arg)
		}
		if err := spec.set(args, value); err != nil {
			return nil, err
		}
	}
	return positional, nil
}

func lookupFlag(specs []flagSpec, name string, long bool) (flagSpec, bool) {
	for _, s := range specs {
		if long && s.long == name {
			return s, true
		}
		if !long && s.short != "" && s.short == name {
			return s, true
		}
	}
	return flagSpec{}, false
}
