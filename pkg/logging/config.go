package logging

// Supported output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Supported levels.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Supported outputs.
const (
	OutputStderr = "stderr"
	OutputFile   = "file"
)

// Defaults for Config.
const (
	DefaultLevel      = LevelInfo
	DefaultFormat     = FormatText
	DefaultOutput     = OutputStderr
	DefaultMaxSize    = 10 // MB
	DefaultMaxBackups = 3
	DefaultMaxAge     = 7 // days
)

// Config holds logging settings.
type Config struct {
	Format   string // "json" or "text"
	Level    string // "debug", "info", "warn", "error"
	Output   string // "stderr" or "file"
	FilePath string // log file when Output is "file"

	// Rotation settings for file output.
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Level:      DefaultLevel,
		Format:     DefaultFormat,
		Output:     DefaultOutput,
		MaxSize:    DefaultMaxSize,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAge,
	}
}

// ValidLevel reports whether level is a supported level name.
func ValidLevel(level string) bool {
	switch level {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return true
	}
	return false
}
