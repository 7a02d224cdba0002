package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialAs connects a test client registered as (role, id).
func dialAs(t *testing.T, hub *Hub, role string, id uint) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(w, r, role, id)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&env))
	return env
}

func waitForRoom(t *testing.T, hub *Hub, room string, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.RoomSize(room) < n {
		if time.Now().After(deadline) {
			t.Fatalf("room %s never reached %d members", room, n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestToUserReachesOnlyThatUser(t *testing.T) {
	hub := NewHub(nil)
	alice := dialAs(t, hub, "student", 1)
	bob := dialAs(t, hub, "student", 2)
	waitForRoom(t, hub, "student:1", 1)
	waitForRoom(t, hub, "student:2", 1)

	hub.ToUser("student", 1, "results:updated", map[string]any{"course_id": 3})

	env := readEnvelope(t, alice)
	assert.Equal(t, "results:updated", env.Event)

	// bob gets nothing
	_ = bob.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var other Envelope
	assert.Error(t, bob.ReadJSON(&other))
}

func TestToRoleBroadcasts(t *testing.T) {
	hub := NewHub(nil)
	t1 := dialAs(t, hub, "teacher", 1)
	t2 := dialAs(t, hub, "teacher", 2)
	waitForRoom(t, hub, "teachers", 2)

	hub.ToRole("teacher", "attendance:marked", map[string]any{"course_id": 1, "date": "2025-01-10"})

	for _, conn := range []*websocket.Conn{t1, t2} {
		env := readEnvelope(t, conn)
		assert.Equal(t, "attendance:marked", env.Event)
	}
}

func TestBroadcastToEmptyRoomIsDropped(t *testing.T) {
	hub := NewHub(nil)
	// no panic, no error: fire and forget
	hub.ToUser("student", 99, "notification:new", map[string]any{"message": "hi"})
	assert.Equal(t, 0, hub.RoomSize("student:99"))
}

func TestDisconnectLeavesRooms(t *testing.T) {
	hub := NewHub(nil)
	conn := dialAs(t, hub, "admin", 1)
	waitForRoom(t, hub, "admins", 1)

	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for hub.RoomSize("admins") != 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never left the room")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
