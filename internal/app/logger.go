package app

import (
	"github.com/gin-gonic/gin"

	"github.com/brandonleon/carbsmart/config"
	"github.com/brandonleon/carbsmart/internal/logger"
)

// InitializeLogger configures the global logger and gin's mode.
func InitializeLogger(cfg config.Config) {
	logger.Init(cfg.Log.Level, cfg.Log.Pretty)
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
}
