package api

import "github.com/okian/winedex/pkg/logger"

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithLogger sets the logger used for failed requests.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAllowedOrigins sets the CORS origin allowlist. An empty list keeps
// the default of every origin.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.allowedOrigins = origins
		}
	}
}
