package shellfie

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// FontFinder locates font files by family name.
type FontFinder interface {
	// Find returns the filesystem path to a font file matching the given name.
	Find(name string) (string, error)
}

// ErrFontNotFound is returned by [DirFontFinder] when no file matches.
var ErrFontNotFound = errors.New("font not found")

// DirFontFinder searches directories for a .ttf/.otf file whose base name,
// ignoring case, spaces, dashes and underscores, starts with the family name.
type DirFontFinder struct {
	Dirs []string
}

// SystemFontFinder returns a finder over the platform's usual font directories.
func SystemFontFinder() DirFontFinder {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return DirFontFinder{Dirs: []string{
			"/System/Library/Fonts", "/Library/Fonts", filepath.Join(home, "Library", "Fonts"),
		}}
	case "windows":
		return DirFontFinder{Dirs: []string{filepath.Join(os.Getenv("WINDIR"), "Fonts")}}
	default:
		return DirFontFinder{Dirs: []string{
			"/usr/share/fonts", "/usr/local/share/fonts", filepath.Join(home, ".local", "share", "fonts"),
		}}
	}
}

// Find implements [FontFinder].
func (f DirFontFinder) Find(name string) (string, error) {
	want := fontKey(name)
	if want == "" {
		return "", ErrFontNotFound
	}

	var found string
	for _, dir := range f.Dirs {
		_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() || found != "" {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			if ext != ".ttf" && ext != ".otf" {
				return nil
			}
			base := fontKey(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
			if strings.HasPrefix(base, want) {
				found = path
				return filepath.SkipAll
			}
			return nil
		})
		if found != "" {
			return found, nil
		}
	}
	return "", ErrFontNotFound
}

func fontKey(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(name))
}

// LoadFont loads a TrueType or OpenType font from a file path.
func LoadFont(path string, size float64) (font.Face, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadFontFromReader(f, size)
}

// LoadFontFromReader loads a TrueType or OpenType font from an io.Reader.
func LoadFontFromReader(r io.Reader, size float64) (font.Face, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return LoadFontFromBytes(data, size)
}

// LoadFontFromBytes loads a TrueType or OpenType font from raw bytes.
func LoadFontFromBytes(data []byte, size float64) (font.Face, error) {
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}

	return newFace(ft, size)
}

func newFace(ft *opentype.Font, size float64) (font.Face, error) {
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}

	return face, nil
}
