//go:build linux

package notify

import (
	"github.com/godbus/dbus/v5"
)

const (
	dbusNotifyDest      = "org.freedesktop.Notifications"
	dbusNotifyPath      = "/org/freedesktop/Notifications"
	dbusNotifyInterface = "org.freedesktop.Notifications"

	notifyTimeoutMs = 3000
)

// dbusNotifier sends desktop notifications via D-Bus.
type dbusNotifier struct {
	obj      dbus.BusObject
	fallback Notifier
}

// NewDesktop creates a Notifier backed by freedesktop notifications,
// falling back to the given notifier when the session bus is
// unavailable.
func NewDesktop(fallback Notifier) Notifier {
	conn, err := dbus.SessionBus()
	if err != nil {
		return fallback
	}
	return &dbusNotifier{
		obj:      conn.Object(dbusNotifyDest, dbusNotifyPath),
		fallback: fallback,
	}
}

// Notify sends the message over D-Bus, falling back on call failure.
func (n *dbusNotifier) Notify(message string, severity Severity) {
	urgency := byte(1)
	if severity == Error {
		urgency = 2
	}
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(urgency),
		"desktop-entry": dbus.MakeVariant("whitehole"),
	}

	// Notify(app_name, replaces_id, icon, summary, body, actions, hints, timeout)
	call := n.obj.Call(
		dbusNotifyInterface+".Notify",
		0,
		"Whitehole",
		uint32(0),
		"",
		message,
		"",
		[]string{},
		hints,
		int32(notifyTimeoutMs),
	)
	if call.Err != nil && n.fallback != nil {
		n.fallback.Notify(message, severity)
	}
}
