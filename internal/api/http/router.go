package http

import (
	"royale-chess/internal/api/ws"
	"royale-chess/internal/config"
	"royale-chess/internal/room"

	"github.com/gin-gonic/gin"
)

func SetupRouter(rm *room.Manager, cfg config.Config, hub *ws.Hub) *gin.Engine {
	r := gin.Default()

	// WebSocket entrypoint for match play
	r.GET("/ws", hub.HandleWS)

	r.GET("/health", HealthHandler())
	r.GET("/rooms", ListRoomsHandler(rm))
	r.GET("/config", GetConfigHandler(cfg))

	return r
}
