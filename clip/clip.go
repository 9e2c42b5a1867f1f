// Package clip reads and writes the desktop clipboard through an
// external tool (xclip, xsel or wl-clipboard, whichever is installed).
// The clipboard is a best-effort collaborator, a missing tool or a
// failed command must never abort the shorten operation, callers treat
// errors as a degraded warning.
package clip

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// Selection a clipboard selection.
type Selection string

const (
	// Clipboard the main copy/paste clipboard
	Clipboard Selection = "clipboard"
	// Primary the middle-click paste selection
	Primary Selection = "primary"
)

// ErrUnavailable no supported clipboard tool was found.
var ErrUnavailable = errors.New("no clipboard tool available")

// tool an external clipboard command pair and its argument shapes.
// xclip and xsel use one command for both directions, wl-clipboard
// splits them into wl-paste and wl-copy.
type tool struct {
	readCmd  string
	writeCmd string
	read     func(sel Selection) []string
	write    func(sel Selection) []string
}

var tools = []tool{
	{
		readCmd:  "xclip",
		writeCmd: "xclip",
		read:     func(sel Selection) []string { return []string{"-selection", string(sel), "-out"} },
		write:    func(sel Selection) []string { return []string{"-selection", string(sel), "-in"} },
	},
	{
		readCmd:  "xsel",
		writeCmd: "xsel",
		read:     func(sel Selection) []string { return []string{selFlag(sel), "--output"} },
		write:    func(sel Selection) []string { return []string{selFlag(sel), "--input"} },
	},
	{
		readCmd:  "wl-paste",
		writeCmd: "wl-copy",
		read: func(sel Selection) []string {
			if sel == Primary {
				return []string{"--primary", "--no-newline"}
			}
			return []string{"--no-newline"}
		},
		write: func(sel Selection) []string {
			if sel == Primary {
				return []string{"--primary"}
			}
			return nil
		},
	},
}

func selFlag(sel Selection) string {
	if sel == Primary {
		return "--primary"
	}
	return "--clipboard"
}

// lookPath indirection for tests.
var lookPath = exec.LookPath

func findTool() (tool, error) {
	for _, t := range tools {
		if _, err := lookPath(t.readCmd); err != nil {
			continue
		}
		if t.writeCmd != t.readCmd {
			if _, err := lookPath(t.writeCmd); err != nil {
				continue
			}
		}
		return t, nil
	}
	return tool{}, ErrUnavailable
}

// Read returns the current text of the given selection.
func Read(ctx context.Context, sel Selection) (string, error) {
	t, err := findTool()
	if err != nil {
		return "", err
	}
	out, err := exec.CommandContext(ctx, t.readCmd, t.read(sel)...).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(out), "\n"), nil
}

// Write replaces the text of the given selection.
func Write(ctx context.Context, sel Selection, text string) error {
	t, err := findTool()
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, t.writeCmd, t.write(sel)...)
	cmd.Stdin = bytes.NewBufferString(text)
	return cmd.Run()
}
