// Package shellfie renders terminal sessions as window screenshots and typing
// animations.
//
// A session is described declaratively: a theme, a window size, a font, and
// either static lines or animation frames. Text may carry ANSI SGR escape
// sequences for color and emphasis. shellfie lays the session out into a list
// of draw operations and hands it to a rasterizer, which writes a PNG, a GIF,
// or a JSON description of the scene.
//
// # Quick Start
//
// Load a config and render it:
//
//	cfg, err := shellfie.LoadConfig("demo.yml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	r := shellfie.NewRenderer(shellfie.WithScale(2))
//	if err := r.Generate(context.Background(), cfg, "demo.png", false); err != nil {
//		log.Fatal(err)
//	}
//
// # Architecture
//
// The package is organized as a pipeline:
//
//   - [Parse]: splits ANSI-styled text into [Segment] values
//   - [Theme]: window chrome and color palette, looked up by name
//   - [Layout]: turns a [Config] into a [Scene] of [DrawOp] values
//   - [BuildFrames]: expands animation frames into the images of a typing effect
//   - [Rasterizer]: writes scenes to files and composes animations
//   - [Renderer]: drives the pipeline end to end
//
// # Configuration
//
// Configs are YAML or TOML, chosen by file extension:
//
//	theme: macos
//	title: "Terminal"
//	window:
//	  width: 600
//	lines:
//	  - prompt: "$ "
//	    command: "ls -la"
//	  - output: "\e[32mdone\e[0m"
//
// Decoded configs are validated before they are returned. Use [DefaultConfig]
// to build one in code.
//
// # ANSI Styling
//
// Only SGR sequences (ESC [ ... m) are interpreted. Bold, italic, underline,
// the 16 named colors, 256-color indexes and 24-bit colors are supported; any
// other escape sequence is kept as literal text.
//
//	segs := shellfie.Parse("\x1b[1;31merror\x1b[0m: missing file")
//	// segs[0]: {Text: "error", Style: {Foreground: "red", Bold: true}}
//	// segs[1]: {Text: ": missing file"}
//
// # Themes
//
// Built-in themes are "macos" (the default), "ubuntu" and "windows". A theme
// fixes the title bar, button style and placement, corner radius, default font,
// and maps named colors to hex values.
//
// # Scenes
//
// A [Scene] is a deterministic, back-to-front list of draw operations in device
// pixels. Scenes can be serialized with [Scene.Snapshot] and restored with
// [SceneSnapshot.Scene].
//
// # Rasterizers
//
//   - [ImageRasterizer]: in-process, writes PNG and GIF with no external programs
//   - [MagickRasterizer]: shells out to ImageMagick ("magick" or "convert")
//   - [JSONRasterizer]: writes scene snapshots as JSON
//
// # Animations
//
// Each typed command produces one frame per character with a trailing cursor,
// followed by the complete command. Output appears at once. Frames are written
// to a temporary directory, composed, and the directory is removed.
//
// # Errors
//
// Errors returned by this package are [*Error] values carrying a [Kind]. Use
// errors.Is with [ErrParse], [ErrValidation], [ErrRender] or [ErrDependency]:
//
//	if errors.Is(err, shellfie.ErrDependency) {
//		// ImageMagick is not installed
//	}
//
// # Thread Safety
//
// Layout functions are pure. A [Renderer] runs one job at a time; use separate
// renderers for concurrent jobs.
package shellfie
