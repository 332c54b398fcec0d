package http

import (
	"github.com/gin-gonic/gin"

	"checkers-server/internal/api/ws"
	"checkers-server/internal/config"
	"checkers-server/internal/room"
)

func NewRouter(reg *room.Registry, cfg config.Config, hub *ws.Hub) *gin.Engine {
	r := gin.Default()

	// WebSocket for gameplay
	r.GET("/ws", hub.HandleWS)

	// --- LOBBY ENDPOINTS ---
	r.GET("/rooms", ListRoomsHandler(reg))
	r.GET("/rooms/:id", RoomHandler(reg))

	// --- META ENDPOINTS ---
	r.GET("/config", ConfigHandler(cfg))
	r.GET("/healthz", HealthHandler())

	return r
}
