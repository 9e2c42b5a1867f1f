package cmd

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/jbaldus/shorten/clip"
	"github.com/jbaldus/shorten/logger"
)

// sampleURL substituted by --self-test.
const sampleURL = "https://www.example.com/a/rather/long/path?with=query&and=parameters"

// defaultStdinWait how long a piped stdin may take to deliver its line
// before the clipboard is consulted instead.
const defaultStdinWait = 500 * time.Millisecond

// errNoInput no URL could be resolved from any source.
var errNoInput = errors.New("no url given on the command line, stdin or clipboard")

// resolver determines the URL to operate on. Priority order:
// an explicit argument, then stdin when data is piped in, then the
// clipboard. When stdin is an interactive terminal there is no piped
// data, so the clipboard is consulted directly.
type resolver struct {
	args       []string
	stdin      io.Reader
	stdinIsTTY bool
	stdinWait  time.Duration
	selection  clip.Selection
	readClip   func(context.Context, clip.Selection) (string, error)
	selfTest   bool
}

func (r resolver) resolve(ctx context.Context) (string, error) {
	if r.selfTest {
		return sampleURL, nil
	}
	if len(r.args) > 0 {
		return r.args[0], nil
	}
	if r.stdinIsTTY {
		return r.clipboard(ctx)
	}
	line, err := r.stdinLine(ctx)
	if err != nil {
		return "", err
	}
	if line != "" {
		return line, nil
	}
	return r.clipboard(ctx)
}

// stdinLine reads one line from stdin, giving up after a short wait so
// an open pipe that never delivers data cannot hang the command. A
// read still in flight when the wait expires is abandoned, it ends
// with the process.
func (r resolver) stdinLine(ctx context.Context) (string, error) {
	lines := make(chan string, 1)
	errs := make(chan error, 1)
	go func() {
		line, err := bufio.NewReader(r.stdin).ReadString('\n')
		if err != nil && err != io.EOF {
			errs <- err
			return
		}
		lines <- strings.TrimSpace(line)
	}()

	wait := r.stdinWait
	if wait <= 0 {
		wait = defaultStdinWait
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case line := <-lines:
		return line, nil
	case err := <-errs:
		return "", err
	case <-timer.C:
		return "", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (r resolver) clipboard(ctx context.Context) (string, error) {
	text, err := r.readClip(ctx, r.selection)
	if err != nil {
		logger.Warn("could not read clipboard", "error", err)
		return "", errNoInput
	}
	if text == "" {
		return "", errNoInput
	}
	return text, nil
}
