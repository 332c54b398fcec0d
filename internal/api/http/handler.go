package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkers-server/internal/config"
	"checkers-server/internal/room"
)

func ListRoomsHandler(reg *room.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		ids := reg.ListRoomIDs()
		out := make([]RoomSummary, 0, len(ids))
		for _, id := range ids {
			snap, err := reg.Snapshot(id)
			if err != nil {
				// Reclaimed between List and Snapshot.
				continue
			}
			out = append(out, RoomSummary{
				RoomID:      id,
				PlayerCount: snap.PlayerCount,
				Status:      string(snap.Status),
			})
		}
		c.JSON(http.StatusOK, gin.H{"rooms": out})
	}
}

func RoomHandler(reg *room.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := reg.Snapshot(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": snap})
	}
}

func ConfigHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, SettingsResponse{
			BoardSize:     cfg.BoardSize,
			TurnDuration:  cfg.TurnDuration,
			TickMillis:    cfg.ClockTick.Milliseconds(),
			ForcedCapture: cfg.ForcedCapture,
		})
	}
}

func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
