package notify

import "github.com/rs/zerolog"

// logNotifier writes notifications to the structured log.
type logNotifier struct {
	log zerolog.Logger
}

// NewLog creates a Notifier that records messages in the log only.
func NewLog(log zerolog.Logger) Notifier {
	return &logNotifier{log: log}
}

func (n *logNotifier) Notify(message string, severity Severity) {
	event := n.log.Info()
	switch severity {
	case Warning:
		event = n.log.Warn()
	case Error:
		event = n.log.Error()
	case Info, Success:
	}
	event.Str("severity", severity.String()).Msg(message)
}
