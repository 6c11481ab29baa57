package websocket

import (
	"FocusLock/interfaces"
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"
)

// Hub хранит активные подключения устройств и доставляет им обновления блокировок
type Hub struct {
	// Зарегистрированные клиенты по ID устройства
	clients map[uint]map[*Client]bool

	// Запросы на регистрацию клиентов
	register chan *Client

	// Запросы на отмену регистрации
	unregister chan *Client

	// Сообщения для всех подключений одного устройства
	broadcast chan *Message

	// OnReevaluate вызывается, когда устройство просит свежее состояние блокировок
	OnReevaluate func(deviceID uint)

	// Мьютекс для потокобезопасных операций
	mu sync.Mutex
}

type Message struct {
	DeviceID uint
	Data     []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 64),
	}
}

// Register регистрирует нового клиента в хабе
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister отменяет регистрацию клиента
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// NotifyLockState ставит обновление в очередь для всех подключений устройства.
// Не блокируется: если очередь хаба заполнена, обновление отбрасывается,
// следующая переоценка пришлет новое
func (h *Hub) NotifyLockState(update interfaces.LockStateUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return err
	}
	select {
	case h.broadcast <- &Message{DeviceID: update.DeviceID, Data: data}:
	default:
		log.Warn().Uint("device_id", update.DeviceID).Msg("[WebSocket] broadcast queue full, dropping lock state")
	}
	return nil
}

// ClientCount возвращает число открытых подключений устройства
func (h *Hub) ClientCount(deviceID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[deviceID])
}

func (h *Hub) requestReevaluation(deviceID uint) {
	if h.OnReevaluate != nil {
		h.OnReevaluate(deviceID)
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for deviceID, clients := range h.clients {
				for client := range clients {
					close(client.send)
				}
				delete(h.clients, deviceID)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.clients[client.DeviceID]; !ok {
				h.clients[client.DeviceID] = make(map[*Client]bool)
			}
			h.clients[client.DeviceID][client] = true
			h.mu.Unlock()
			log.Debug().Uint("device_id", client.DeviceID).Msg("[WebSocket] client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.DeviceID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
				}
				if len(clients) == 0 {
					delete(h.clients, client.DeviceID)
				}
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			if clients, ok := h.clients[message.DeviceID]; ok {
				for client := range clients {
					select {
					case client.send <- message.Data:
					default:
						close(client.send)
						delete(clients, client)
						if len(clients) == 0 {
							delete(h.clients, message.DeviceID)
						}
					}
				}
			}
			h.mu.Unlock()
		}
	}
}
