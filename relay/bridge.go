package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"souq/mq"
	"souq/rdx"

	"github.com/redis/go-redis/v9"
)

const resubscribeDelay = 2 * time.Second

// StartBridge feeds Redis relay events into the hub, so events
// published on any node reach the dashboard sessions connected to this
// one. A dropped subscription is re-established after a short delay;
// the bridge only stops when ctx is done.
func StartBridge(ctx context.Context, hub *Hub) {
	for {
		sub := rdx.Conn.Subscribe(ctx, mq.RelayChannel)
		log.Println("[relay] bridge listening for dashboard events")

		err := pump(ctx, hub, sub.Channel())
		sub.Close()
		if err == nil {
			return
		}

		log.Printf("[relay] bridge lost: %v; resubscribing in %v", err, resubscribeDelay)
		select {
		case <-ctx.Done():
			return
		case <-time.After(resubscribeDelay):
		}
	}
}

// pump relays messages into the hub until the subscription closes or
// ctx is done. A closed subscription is reported as an error so the
// caller resubscribes; cancellation returns nil.
func pump(ctx context.Context, hub *Hub, ch <-chan *redis.Message) error {
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return fmt.Errorf("subscription channel closed")
			}
			var event mq.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("[relay] bad event payload: %v", err)
				continue
			}
			hub.Broadcast(event.Channel, []byte(msg.Payload))
		case <-ctx.Done():
			return nil
		}
	}
}
