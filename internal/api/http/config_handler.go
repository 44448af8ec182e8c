package http

import (
	"net/http"

	"royale-chess/internal/config"

	"github.com/gin-gonic/gin"
)

// GetConfigHandler returns the engine tuning the server is running with.
func GetConfigHandler(cfg config.Config) gin.HandlerFunc {
	view := EngineConfigView{
		BoardSize:            cfg.BoardSize,
		MaxPlayers:           cfg.MaxPlayers,
		MinPlayers:           cfg.MinPlayers,
		CooldownSeconds:      cfg.CooldownSeconds,
		GraceSeconds:         cfg.GraceSeconds,
		ShrinkInitialSeconds: cfg.ShrinkInitialSeconds,
		ShrinkRepeatSeconds:  cfg.ShrinkRepeatSeconds,
		ShrinkCellsPerEvent:  cfg.ShrinkCellsPerEvent,
		WoodsDensity:         cfg.WoodsDensity,
		RetentionHours:       cfg.RetentionHours,
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"config": view})
	}
}
