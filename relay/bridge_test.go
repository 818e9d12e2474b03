package relay

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"souq/mq"

	"github.com/redis/go-redis/v9"
)

func TestPumpRelaysAndReportsClosedSubscription(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:    make(chan []byte, 10),
		Channel: "dashboard",
	}
	hub.register <- client

	event := mq.Event{Channel: "dashboard", Name: "order:new", At: time.Now().Unix()}
	data, _ := json.Marshal(event)

	ch := make(chan *redis.Message, 1)
	ch <- &redis.Message{Payload: string(data)}

	errCh := make(chan error, 1)
	go func() { errCh <- pump(context.Background(), hub, ch) }()

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for relayed event")
	}

	// a dropped subscription must be reported, not swallowed
	close(ch)
	select {
	case err := <-errCh:
		if err == nil {
			t.Fatal("expected an error after the subscription closed")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("pump did not return after channel close")
	}
}

func TestPumpStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan *redis.Message)

	errCh := make(chan error, 1)
	go func() { errCh <- pump(ctx, NewHub(), ch) }()

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("expected clean stop, got %v", err)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("pump did not stop on cancel")
	}
}
