// Package notify sends desktop notifications.
package notify

import (
	"path/filepath"

	"github.com/gen2brain/beeep"
)

const appName = "ByeTax"

var notifier = func(title, message string) error {
	return beeep.Notify(title, message, "")
}

// SetNotifier replaces the notification backend. Used by tests.
func SetNotifier(fn func(title, message string) error) {
	notifier = fn
}

// Send shows a desktop notification.
func Send(title, message string) error {
	return notifier(title, message)
}

// ExportSaved announces a finished export.
func ExportSaved(path string) error {
	return Send(appName, filepath.Base(path)+" 저장 완료")
}
