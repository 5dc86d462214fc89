package svgprocess

import (
	"fmt"

	"github.com/kpango/glg"
)

// Severity is the level of a diagnostic event.
type Severity uint8

const (
	Debug Severity = iota
	Info
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	default:
		return "<unknown Severity>"
	}
}

// Event is a diagnostic collected while processing a document.
type Event struct {
	Severity Severity
	Message  string
}

func (e Event) String() string { return e.Severity.String() + ": " + e.Message }

// Events is the list of diagnostics of one processing run.
type Events []Event

// Filter returns the events with at least the given severity.
func (es Events) Filter(min Severity) Events {
	var out Events
	for _, e := range es {
		if e.Severity >= min {
			out = append(out, e)
		}
	}
	return out
}

// Log forwards the events to the glg logger, at their level.
func (es Events) Log() {
	for _, e := range es {
		e.Log()
	}
}

// Log forwards the event to the glg logger.
func (e Event) Log() {
	switch e.Severity {
	case Debug:
		glg.Debug(e.Message)
	case Info:
		glg.Info(e.Message)
	case Warning:
		glg.Warn(e.Message)
	default:
		glg.Error(e.Message)
	}
}

func (p *processor) report(sev Severity, format string, args ...interface{}) {
	e := Event{Severity: sev, Message: fmt.Sprintf(format, args...)}
	p.events = append(p.events, e)
	if p.mode == WarnErrorMode && sev >= Warning {
		e.Log()
	}
}
