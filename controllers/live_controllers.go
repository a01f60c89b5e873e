package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/tomdewit/bartab-app/live"
	"github.com/tomdewit/bartab-app/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LiveHandler upgrades the connection and streams the bar's events until
// the client disconnects.
func LiveHandler(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	live.RegisterClient(ws, barID)
	defer live.UnregisterClient(ws)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
}
