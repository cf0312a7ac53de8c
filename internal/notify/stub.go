//go:build !linux

package notify

// NewDesktop returns the fallback notifier on platforms without a
// freedesktop notification service.
func NewDesktop(fallback Notifier) Notifier {
	return fallback
}
