package controllers

import (
	"FocusLock/websocket"

	"github.com/gin-gonic/gin"
)

var hub *websocket.Hub

func SetWebSocketHub(h *websocket.Hub) {
	hub = h
}

// ServeWs обрабатывает WebSocket-подключения устройств
func ServeWs(c *gin.Context) {
	deviceID, ok := currentDeviceID(c)
	if !ok {
		return
	}
	websocket.ServeWs(hub, c.Writer, c.Request, deviceID)
}
