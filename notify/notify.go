// Package notify sends desktop notifications.
package notify

import (
	"github.com/gen2brain/beeep"

	"github.com/jbaldus/shorten/logger"
)

// Send shows a desktop notification. Fire-and-forget, a missing or
// failing notification daemon never aborts the shorten operation.
func Send(title, body string) {
	if err := beeep.Notify(title, body, ""); err != nil {
		logger.Debug("notification failed", "error", err)
	}
}
