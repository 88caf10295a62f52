package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs
// within a context. The webhook path sets RequestID at entry and Stage at
// every pipeline transition.
type LogFields struct {
	RequestID string // per-request identifier assigned at entry
	Repo      string // repository named by the inbound event
	Stage     string // current pipeline stage (validate, analyze, resolve, notify)
	Component string // component name, e.g. "buildalert.llm"
}

// WithLogFields enriches context with structured log fields. Multiple calls
// merge fields, with newer non-empty values taking precedence. Context
// timeouts and cancellation are preserved.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context. Returns empty LogFields
// if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, new LogFields) LogFields {
	result := existing

	if new.RequestID != "" {
		result.RequestID = new.RequestID
	}
	if new.Repo != "" {
		result.Repo = new.Repo
	}
	if new.Stage != "" {
		result.Stage = new.Stage
	}
	if new.Component != "" {
		result.Component = new.Component
	}

	return result
}

// Truncate truncates a string to maxLen characters, appending "..." if
// truncated. Useful for logging potentially long strings like build logs or
// analysis text. Counts runes, not bytes, so multibyte text is never cut
// mid-sequence.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
