package observability

import (
	"github.com/danmuck/ghcbctl/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger resolves the runtime logging profile, tags the logger
// with the binary name and installs it globally.
func InitLogger(app string) zerolog.Logger {
	opts := logging.ConfigureRuntime()
	logger := logging.NewLogger(opts).With().Str("app", app).Logger()
	log.Logger = logger
	return logger
}
