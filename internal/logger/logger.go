package logger

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/deutsch-quiz/internal/config"
)

// New returns a JSON production logger for production and a console logger otherwise.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
