package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/nayana/internal/monitor"
	"github.com/ayusman/nayana/internal/store"
)

func TestAPI_SessionWorkflow(t *testing.T) {
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	sess := &store.Session{InitialMode: "both"}
	if err := s.Sessions().Create(sess); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := s.Events().Record(&store.Event{SessionID: sess.ID, Kind: "click", Source: "hand", X: 5, Y: 6}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := s.Sessions().End(sess.ID, "hand"); err != nil {
		t.Fatalf("End() error = %v", err)
	}

	srv := New(Config{Store: s})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	// 1. List sessions
	resp, err := client.Get(ts.URL + "/api/sessions")
	if err != nil {
		t.Fatalf("GET /api/sessions error = %v", err)
	}
	var listed struct {
		Sessions []struct {
			ID        string `json:"id"`
			FinalMode string `json:"final_mode"`
			Active    bool   `json:"active"`
		} `json:"sessions"`
	}
	json.NewDecoder(resp.Body).Decode(&listed)
	resp.Body.Close()

	if len(listed.Sessions) != 1 {
		t.Fatalf("len(sessions) = %d, want 1", len(listed.Sessions))
	}
	if listed.Sessions[0].FinalMode != "hand" || listed.Sessions[0].Active {
		t.Errorf("unexpected session: %+v", listed.Sessions[0])
	}

	// 2. Events of the session
	resp, err = client.Get(ts.URL + "/api/sessions/" + sess.ID + "/events")
	if err != nil {
		t.Fatalf("GET events error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET events status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var events struct {
		Events []struct {
			Kind string `json:"kind"`
		} `json:"events"`
	}
	json.NewDecoder(resp.Body).Decode(&events)
	resp.Body.Close()

	if len(events.Events) != 1 || events.Events[0].Kind != "click" {
		t.Errorf("unexpected events: %+v", events.Events)
	}

	// 3. Delete and verify
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/sessions/"+sess.ID, nil)
	resp, _ = client.Do(req)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	resp.Body.Close()

	resp, _ = client.Get(ts.URL + "/api/sessions/" + sess.ID)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("GET after delete status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	resp.Body.Close()
}

func TestAPI_HealthCheck(t *testing.T) {
	srv := New(Config{})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var health struct {
		Status string `json:"status"`
		Uptime string `json:"uptime"`
	}
	json.NewDecoder(resp.Body).Decode(&health)

	if health.Status != "ok" {
		t.Errorf("status = %s, want ok", health.Status)
	}
}

func TestAPI_EventsWebSocket(t *testing.T) {
	hub := monitor.NewHub()
	hub.SetStatus(monitor.Status{Mode: "both"})

	ts := httptest.NewServer(New(Config{Hub: hub}))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var first monitor.Message
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if first.Type != monitor.TypeMode || first.Mode != "both" {
		t.Errorf("first message = %+v, want current mode", first)
	}

	hub.Publish(monitor.Message{Type: monitor.TypeEvent, Kind: "scroll_up", Source: "eye"})

	var ev monitor.Message
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if ev.Kind != "scroll_up" || ev.Source != "eye" {
		t.Errorf("event = %+v, want scroll_up from eye", ev)
	}
}

func TestAPI_Stream(t *testing.T) {
	hub := monitor.NewHub()
	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02, 0xFF, 0xD9}
	hub.SetFrame(jpeg)

	ts := httptest.NewServer(New(Config{Hub: hub}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/stream", nil)
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("GET /api/stream error = %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "multipart/x-mixed-replace") {
		t.Fatalf("Content-Type = %q, want multipart stream", ct)
	}

	r := bufio.NewReader(resp.Body)
	header := make([]byte, 0, 128)
	for !bytes.HasSuffix(header, []byte("\r\n\r\n")) {
		b, err := r.ReadByte()
		if err != nil {
			t.Fatalf("reading part header: %v", err)
		}
		header = append(header, b)
	}
	if !bytes.HasPrefix(header, []byte("--frame\r\n")) {
		t.Errorf("part header = %q, want boundary first", header)
	}

	body := make([]byte, len(jpeg))
	if _, err := io.ReadFull(r, body); err != nil {
		t.Fatalf("reading frame body: %v", err)
	}
	if !bytes.Equal(body, jpeg) {
		t.Errorf("frame body = %x, want %x", body, jpeg)
	}
}
