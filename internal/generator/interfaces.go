package generator

// Logger receives extraction diagnostics. *utils.DiagnosticSystem satisfies it.
type Logger interface {
	Debug(format string, args ...any)
	Warn(format string, args ...any)
}

type discardLogger struct{}

func (discardLogger) Debug(string, ...any) {}
func (discardLogger) Warn(string, ...any)  {}
