package relay

import (
	"encoding/json"
	"testing"
	"time"

	"souq/mq"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// create fake client
	client := &Client{
		Send:    make(chan []byte, 10),
		Channel: "dashboard",
	}

	// register client
	hub.register <- client

	// broadcast a test event
	event := mq.Event{Channel: "dashboard", Name: "contact:new", At: time.Now().Unix()}
	data, _ := json.Marshal(event)
	hub.Broadcast("dashboard", data)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for event")
	}

	// unregister client
	hub.unregister <- client
}

func TestHubDropsOtherChannels(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:    make(chan []byte, 10),
		Channel: "dashboard",
	}
	hub.register <- client

	hub.Broadcast("somewhere-else", []byte("noise"))
	hub.Broadcast("dashboard", []byte("signal"))

	select {
	case got := <-client.Send:
		if string(got) != "signal" {
			t.Fatalf("expected signal, got %s", got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for event")
	}
}
