// Package notify surfaces fire-and-forget user notifications. Desktop
// notifications go over D-Bus where available; everything degrades to a
// logging notifier so core logic never depends on the collaborator being
// present.
package notify

// Severity classifies a notification for display.
type Severity int

const (
	Info Severity = iota
	Success
	Warning
	Error
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Notifier delivers user-facing messages. Implementations must never
// block and must swallow their own delivery failures.
type Notifier interface {
	Notify(message string, severity Severity)
}
