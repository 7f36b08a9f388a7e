// Copyright © 2024 The ELPS authors

package diagnostic

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// ColorMode controls when ANSI color codes are used.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // detect based on terminal and NO_COLOR
	ColorAlways                  // always use colors
	ColorNever                   // never use colors
)

// ParseColorMode maps "auto", "always" and "never" to a ColorMode. Any
// other value yields ColorAuto.
func ParseColorMode(s string) ColorMode {
	switch s {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}

// palette paints the parts of a rendered diagnostic.
type palette struct {
	bold     func(a ...interface{}) string
	yellow   func(a ...interface{}) string
	boldRed  func(a ...interface{}) string
	boldBlue func(a ...interface{}) string
	boldCyan func(a ...interface{}) string
}

func newPalette(enabled bool) palette {
	paint := func(attrs ...color.Attribute) func(a ...interface{}) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		bold:     paint(color.Bold),
		yellow:   paint(color.FgYellow, color.Bold),
		boldRed:  paint(color.FgRed, color.Bold),
		boldBlue: paint(color.FgBlue, color.Bold),
		boldCyan: paint(color.FgCyan, color.Bold),
	}
}

// choosePalette selects the appropriate color palette based on the mode
// and the output file descriptor.
func choosePalette(mode ColorMode, w *os.File) palette {
	switch mode {
	case ColorAlways:
		return newPalette(true)
	case ColorNever:
		return newPalette(false)
	default: // ColorAuto
		if os.Getenv("NO_COLOR") != "" {
			return newPalette(false)
		}
		return newPalette(isTerminal(w))
	}
}

// isTerminal reports whether f is connected to a terminal.
func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
