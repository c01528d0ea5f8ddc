package api

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/verdantworks/growline/internal/progression/bus"
	"github.com/verdantworks/growline/internal/progression/event"
)

func dialFeed(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/feed" + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFeedMessage(t *testing.T, conn *websocket.Conn) feedMessage {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read message: %v", err)
	}
	var msg feedMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("decode message: %v", err)
	}
	return msg
}

func TestHubBroadcastsBusEvents(t *testing.T) {
	t.Parallel()

	eventBus := bus.New()
	hub := NewHub(eventBus)
	go hub.Run()
	t.Cleanup(hub.Stop)

	server := NewServer(Services{}, nil, hub, SubmissionGrantConfig{})
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	all := dialFeed(t, ts, "")
	filtered := dialFeed(t, ts, "?profile_id=grower-1")

	// Give the hub loop a beat to register both connections.
	time.Sleep(50 * time.Millisecond)

	eventBus.Publish(event.Event{
		ProfileID:   "grower-1",
		Seq:         1,
		Timestamp:   time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC),
		Type:        event.TypeSkillUnlocked,
		EntityType:  "skill",
		EntityID:    "soil-basics",
		PayloadJSON: []byte(`{"node_id":"soil-basics"}`),
	})
	eventBus.Publish(event.Event{
		ProfileID:  "grower-2",
		Seq:        1,
		Timestamp:  time.Date(2026, 7, 1, 12, 0, 1, 0, time.UTC),
		Type:       event.TypeLevelUp,
		EntityType: "profile",
		EntityID:   "grower-2",
	})

	first := readFeedMessage(t, all)
	if first.Type != string(event.TypeSkillUnlocked) || first.ProfileID != "grower-1" {
		t.Fatalf("unexpected first message %+v", first)
	}
	second := readFeedMessage(t, all)
	if second.ProfileID != "grower-2" {
		t.Fatalf("unexpected second message %+v", second)
	}

	// The filtered connection only sees grower-1. If the grower-2 event
	// had been delivered it would arrive before a subsequent grower-1
	// event, so publish one more and check ordering.
	msg := readFeedMessage(t, filtered)
	if msg.ProfileID != "grower-1" {
		t.Fatalf("filtered feed leaked %+v", msg)
	}
	eventBus.Publish(event.Event{
		ProfileID:  "grower-1",
		Seq:        2,
		Timestamp:  time.Date(2026, 7, 1, 12, 0, 2, 0, time.UTC),
		Type:       event.TypeExperienceGained,
		EntityType: "profile",
		EntityID:   "grower-1",
	})
	msg = readFeedMessage(t, filtered)
	if msg.Type != string(event.TypeExperienceGained) {
		t.Fatalf("expected the next grower-1 event, got %+v", msg)
	}
}
