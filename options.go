package peopledb

import "log/slog"

type Option func(*Store)

// WithLogger sets the logger used for debug output and update warnings. Defaults to slog.Default()
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}
