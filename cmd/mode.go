package cmd

import "github.com/jbaldus/shorten/clip"

// mode the invocation mode.
type mode int

const (
	// modePlain print the result only
	modePlain mode = iota
	// modeClipboard read from and write back to the copy/paste clipboard
	modeClipboard
	// modeSelection read from and write back to the middle-click selection
	modeSelection
)

// invocation names selecting a mode, for symlinked installs.
var invocationModes = map[string]mode{
	"shorten-clip": modeClipboard,
	"shorten-sel":  modeSelection,
}

// modeFor resolves the invocation mode from the program name and flags.
// Flags win over the program name.
func modeFor(program string, clipboard, selection bool) mode {
	switch {
	case clipboard:
		return modeClipboard
	case selection:
		return modeSelection
	}
	if m, ok := invocationModes[program]; ok {
		return m
	}
	return modePlain
}

// selection returns the clipboard selection a mode operates on.
// Plain mode still reads the copy/paste clipboard when input falls
// through to it, but never writes back.
func (m mode) selection() clip.Selection {
	if m == modeSelection {
		return clip.Primary
	}
	return clip.Clipboard
}
