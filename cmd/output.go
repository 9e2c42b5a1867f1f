package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/jbaldus/shorten/clip"
	"github.com/jbaldus/shorten/logger"
)

// router emits the shortened URL to the configured sinks. The result
// always goes to stdout; clipboard modes also write it back to their
// selection; when stdout is consumed programmatically a notification
// makes the result visible anyway.
type router struct {
	stdout      io.Writer
	stdoutIsTTY bool
	mode        mode
	writeClip   func(context.Context, clip.Selection, string) error
	notify      func(title, body string)
}

func (rt router) emit(ctx context.Context, shortened string) {
	fmt.Fprintln(rt.stdout, shortened)

	if rt.mode != modePlain {
		if err := rt.writeClip(ctx, rt.mode.selection(), shortened); err != nil {
			logger.Warn("could not write clipboard", "error", err)
		}
	}

	if !rt.stdoutIsTTY {
		rt.notify("URL shortened", shortened)
	}
}
