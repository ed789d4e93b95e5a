package logging

// NopLogger discards everything. Used in tests and as the zero-value default.
type NopLogger struct{}

// NewNopLogger returns a Logger that ignores all records.
func NewNopLogger() Logger {
	return &NopLogger{}
}

func (n *NopLogger) Debug(_ string, _ ...any) {}

func (n *NopLogger) Info(_ string, _ ...any) {}

func (n *NopLogger) Warn(_ string, _ ...any) {}

func (n *NopLogger) Error(_ string, _ ...any) {}

func (n *NopLogger) With(_ ...any) Logger { return n }
