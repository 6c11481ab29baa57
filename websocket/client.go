package websocket

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	// Время ожидания записи сообщения
	writeWait = 10 * time.Second

	// Время ожидания чтения сообщений от клиента
	pongWait = 60 * time.Second

	// Период отправки пингов, должен быть меньше pongWait
	pingPeriod = (pongWait * 9) / 10

	// Максимальный размер входящего сообщения
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Агенты на устройствах не присылают Origin
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client одно WebSocket-соединение устройства
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	DeviceID uint
	send     chan []byte
}

// inbound сообщение, которое устройство может прислать по сокету
type inbound struct {
	Type string `json:"type"`
}

func NewClient(hub *Hub, conn *websocket.Conn, deviceID uint) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		DeviceID: deviceID,
		send:     make(chan []byte, 16),
	}
}

// ServeWs переводит запрос на WebSocket и передает устройству обновления блокировок
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request, deviceID uint) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Uint("device_id", deviceID).Msg("[WebSocket] upgrade failed")
		return
	}

	client := NewClient(hub, conn, deviceID)
	hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

// ReadPump обрабатывает входящие сообщения от устройства
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
		log.Debug().Uint("device_id", c.DeviceID).Msg("[WebSocket] connection closed")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Uint("device_id", c.DeviceID).Msg("[WebSocket] read failed")
			}
			return
		}

		var msg inbound
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Warn().Err(err).Uint("device_id", c.DeviceID).Msg("[WebSocket] malformed message")
			continue
		}
		if msg.Type == "reevaluate" {
			c.hub.requestReevaluation(c.DeviceID)
		}
	}
}

// WritePump отправляет сообщения устройству
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Хаб закрыл канал
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Warn().Err(err).Uint("device_id", c.DeviceID).Msg("[WebSocket] write failed")
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
