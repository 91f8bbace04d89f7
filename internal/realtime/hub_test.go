package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lalith-99/lockerroom/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublish_OnlyReachesTeamSubscribers(t *testing.T) {
	hub := NewHub(zap.NewNop())
	a := hub.Subscribe(1)
	b := hub.Subscribe(2)

	hub.Publish(1, Event{Type: EventMessageDeleted, MessageID: 9})

	select {
	case ev := <-a.Events():
		assert.Equal(t, EventMessageDeleted, ev.Type)
		assert.Equal(t, int64(1), ev.TeamID)
		assert.Equal(t, int64(9), ev.MessageID)
	default:
		t.Fatal("expected an event for team 1")
	}

	select {
	case ev := <-b.Events():
		t.Fatalf("unexpected event for team 2: %+v", ev)
	default:
	}
}

func TestPublish_DropsSlowSubscriber(t *testing.T) {
	hub := NewHub(zap.NewNop())
	sub := hub.Subscribe(1)

	for i := 0; i < sendBuffer+1; i++ {
		hub.Publish(1, Event{Type: EventMessageCreated})
	}

	assert.Equal(t, 0, hub.Subscribers(1))

	n := 0
	for range sub.Events() {
		n++
	}
	assert.Equal(t, sendBuffer, n)
}

func TestUnsubscribe_Idempotent(t *testing.T) {
	hub := NewHub(zap.NewNop())
	sub := hub.Subscribe(3)

	hub.Unsubscribe(sub)
	hub.Unsubscribe(sub)

	assert.Equal(t, 0, hub.Subscribers(3))
	_, ok := <-sub.Events()
	assert.False(t, ok)
}

func TestServe_StreamsEventsOverWebsocket(t *testing.T) {
	hub := NewHub(zap.NewNop())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(w, r, 7)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Subscribers(7) == 1 }, time.Second, 10*time.Millisecond)

	msg := &models.TeamMessage{ID: 4, TeamID: 7, AuthorID: 1, AuthorName: "ann", Content: "hi"}
	hub.Publish(7, Event{Type: EventMessageCreated, MessageID: msg.ID, Message: msg})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, EventMessageCreated, got.Type)
	assert.Equal(t, int64(7), got.TeamID)
	require.NotNil(t, got.Message)
	assert.Equal(t, "hi", got.Message.Content)

	hub.Publish(7, Event{Type: EventTeamDeleted})
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, EventTeamDeleted, got.Type)

	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure))

	require.Eventually(t, func() bool { return hub.Subscribers(7) == 0 }, time.Second, 10*time.Millisecond)
}
