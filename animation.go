package shellfie

import (
	"math"
	"strings"
)

// CursorGlyph is appended to a command while it is being typed.
const CursorGlyph = "█"

// instantPrefixes mark announcement lines that appear at once even when given as
// a typed command. New configs should set Frame.Instant instead.
var instantPrefixes = []string{"Generated:", "Let the glow begin"}

// AnimationFrame is one image of an animation: the lines on screen and how
// long the image stays up, in milliseconds.
type AnimationFrame struct {
	Lines []Line
	Delay int
}

// isInstant reports whether the frame's command should skip the typing effect.
func (f Frame) isInstant() bool {
	if f.Instant {
		return true
	}
	for _, p := range instantPrefixes {
		if strings.HasPrefix(f.Type, p) {
			return true
		}
	}
	return false
}

// BuildFrames expands cfg.Frames into the images of a typing animation.
//
// A typed command of N characters yields N frames with a growing prefix and a
// cursor, then one frame with the whole command and no cursor, each held for
// the typing speed. Output is committed at once and shown for the frame's delay.
// A positive delay without output adds a pause frame.
func BuildFrames(cfg *Config) []AnimationFrame {
	speed := cfg.Animation.TypingSpeed
	if speed == 0 {
		speed = DefaultTypingSpeed
	}

	var frames []AnimationFrame
	var current []Line

	for _, f := range cfg.Frames {
		if f.Type != "" {
			if !f.isInstant() {
				frames = appendTypingFrames(frames, current, f.Prompt, f.Type, speed)
			}
			final := append(cloneLines(current), CommandLine{Prompt: f.Prompt, Command: f.Type})
			frames = append(frames, AnimationFrame{Lines: final, Delay: speed})
			current = append(current, CommandLine{Prompt: f.Prompt, Command: f.Type})
		}

		if f.Output != "" {
			for _, text := range splitLines(f.Output) {
				current = append(current, OutputLine{Text: text})
			}
			delay := f.Delay
			if delay == 0 {
				delay = DefaultOutputDelay
			}
			frames = append(frames, AnimationFrame{Lines: cloneLines(current), Delay: delay})
		}

		if f.Delay > 0 && f.Output == "" {
			frames = append(frames, AnimationFrame{Lines: cloneLines(current), Delay: f.Delay})
		}
	}

	return frames
}

// appendTypingFrames adds one frame per typed character. Prefixes are cut on
// rune boundaries so multi-byte characters are never split.
func appendTypingFrames(frames []AnimationFrame, base []Line, prompt, command string, delay int) []AnimationFrame {
	for i := range command {
		if i == 0 {
			continue
		}
		frames = append(frames, typingFrame(base, prompt, command[:i], delay))
	}
	return append(frames, typingFrame(base, prompt, command, delay))
}

func typingFrame(base []Line, prompt, typed string, delay int) AnimationFrame {
	lines := append(cloneLines(base), CommandLine{Prompt: prompt, Command: typed + CursorGlyph})
	return AnimationFrame{Lines: lines, Delay: delay}
}

func cloneLines(lines []Line) []Line {
	return append([]Line(nil), lines...)
}

// FrameConfig returns a static config showing lines with cfg's theme, title,
// window and font.
func FrameConfig(cfg *Config, lines []Line) *Config {
	out := cfg.Clone()
	out.Lines = lines
	out.Frames = nil
	return out
}

// GIFDelay converts milliseconds to the GIF frame delay unit (1/100 s), rounding half up.
func GIFDelay(ms int) int {
	return int(math.Round(float64(ms) / 10))
}
