package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/parlor-billing/hub"
	"github.com/yeremiapane/parlor-billing/middlewares"
	"github.com/yeremiapane/parlor-billing/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// DashboardHandler -> websocket endpoint pushing committed session events
func DashboardHandler(h *hub.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			utils.ErrorLogger.Printf("Dashboard upgrade failed: %v", err)
			return
		}

		h.RegisterClient(ws, middlewares.TenantID(c))

		// Client messages are ignored; reading detects the disconnect.
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		h.UnregisterClient(ws)
	}
}
