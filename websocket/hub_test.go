package websocket

import (
	"FocusLock/interfaces"
	"FocusLock/lockwindow"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id uint = 7
		if r.URL.Query().Get("device") == "8" {
			id = 8
		}
		ServeWs(hub, w, r, id)
	}))
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_DeliversLockStateToDevice(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv, "")
	other := dial(t, srv, "?device=8")

	require.Eventually(t, func() bool {
		return hub.ClientCount(7) == 1 && hub.ClientCount(8) == 1
	}, time.Second, 10*time.Millisecond)

	update := interfaces.LockStateUpdate{
		Type:     interfaces.LockStateMessageType,
		DeviceID: 7,
		Decisions: []interfaces.AppDecision{
			{PackageName: "com.instagram.android", Decision: lockwindow.Decision{Locked: true, Reason: lockwindow.ReasonSchedule}},
		},
		EvaluatedAt: time.Date(2025, time.August, 5, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, hub.NotifyLockState(update))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var got interfaces.LockStateUpdate
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, uint(7), got.DeviceID)
	require.Len(t, got.Decisions, 1)
	assert.True(t, got.Decisions[0].Locked)
	assert.Equal(t, lockwindow.ReasonSchedule, got.Decisions[0].Reason)

	// Устройство 8 ничего не получает
	other.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err = other.ReadMessage()
	assert.Error(t, err)
}

func TestHub_ReevaluateRequest(t *testing.T) {
	hub, srv := startHub(t)
	requested := make(chan uint, 1)
	hub.OnReevaluate = func(deviceID uint) { requested <- deviceID }

	conn := dial(t, srv, "")
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "reevaluate"}))

	select {
	case id := <-requested:
		assert.Equal(t, uint(7), id)
	case <-time.After(2 * time.Second):
		t.Fatal("reevaluation was not requested")
	}
}

func TestHub_UnregistersOnClose(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv, "")

	require.Eventually(t, func() bool { return hub.ClientCount(7) == 1 }, time.Second, 10*time.Millisecond)
	conn.Close()
	assert.Eventually(t, func() bool { return hub.ClientCount(7) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_NotifyWithoutClients(t *testing.T) {
	hub := NewHub()
	// Хаб не запущен: буфер принимает сообщения, затем они отбрасываются
	for i := 0; i < 100; i++ {
		assert.NoError(t, hub.NotifyLockState(interfaces.LockStateUpdate{DeviceID: 1}))
	}
}
