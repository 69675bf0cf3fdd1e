package logger

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/hifz-revision-bot/internal/config"
)

// New returns a JSON production logger for the production environment and a
// human-readable development logger everywhere else.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
