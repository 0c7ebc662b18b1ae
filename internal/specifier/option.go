package specifier

import (
	"log/slog"

	"github.com/roach88/sortspec/internal/reactive"
)

// Option configures a SortSpecifier.
type Option func(*SortSpecifier)

// WithDependencies sets the source of reactive dependencies.
// Default: reactive.Nop.
func WithDependencies(src reactive.Source) Option {
	return func(s *SortSpecifier) {
		s.source = src
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *SortSpecifier) {
		s.logger = l
	}
}

// WithEqualsLimit logs a warning once the equals dependency table holds
// more than n entries. The table is never trimmed. Default: no limit.
func WithEqualsLimit(n int) Option {
	return func(s *SortSpecifier) {
		s.equalsLimit = n
	}
}

// WithStrictToggle makes Toggle return an INVALID_ARGUMENT error for a
// field that is not configured or cannot be toggled. By default Toggle
// logs a warning and does nothing.
func WithStrictToggle() Option {
	return func(s *SortSpecifier) {
		s.strictToggle = true
	}
}
