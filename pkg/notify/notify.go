// Package notify delivers aggregate validation outcomes to external sinks.
// It is the alternative tail of a full-form pass: when no summary container
// is configured, the presentation adapter hands the error map to a Notifier
// instead of rendering markup.
package notify

import "go.uber.org/zap"

// Notifier receives the complete error map after a full-form validation
// pass. An empty map means the form came up clean; implementations decide
// whether that is worth reporting.
type Notifier interface {
	Notify(formID string, errs map[string]string)
}

// Func adapts a plain function to the Notifier interface.
type Func func(formID string, errs map[string]string)

// Notify calls f.
func (f Func) Notify(formID string, errs map[string]string) {
	if f == nil {
		return
	}
	f(formID, errs)
}

// ZapNotifier reports validation outcomes through a structured logger. It is
// the default sink for headless callers (the CLI, server-side checks) that
// have no page to paint.
type ZapNotifier struct {
	logger *zap.Logger
}

// NewZapNotifier wraps the given logger. A nil logger produces a silent
// notifier.
func NewZapNotifier(logger *zap.Logger) *ZapNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapNotifier{logger: logger}
}

// Notify logs one entry per pass: a warn with the field messages when the
// form is invalid, a debug line when it is clean.
func (n *ZapNotifier) Notify(formID string, errs map[string]string) {
	if len(errs) == 0 {
		n.logger.Debug("formval: form valid", zap.String("form_id", formID))
		return
	}
	fields := make([]zap.Field, 0, len(errs)+2)
	fields = append(fields,
		zap.String("form_id", formID),
		zap.Int("error_count", len(errs)))
	for name, message := range errs {
		fields = append(fields, zap.String("field."+name, message))
	}
	n.logger.Warn("formval: form invalid", fields...)
}
