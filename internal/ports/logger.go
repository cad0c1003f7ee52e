package ports

// Logger carries the four severities the agent reports at. Business-rule stop
// conditions log at info/warn; only transport and loop failures log at error.
type Logger interface {
	Success(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}
