package gomilp

import "github.com/rs/zerolog"

// Option adjusts a Model during construction.
type Option func(*Model) error

// WithLogger replaces the model's logger, which otherwise derives from
// the package-global logger.Logger().
func WithLogger(l zerolog.Logger) Option {
	return func(m *Model) error {
		m.logger = l

		return nil
	}
}
