package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopPublish(t *testing.T) {
	assert.NoError(t, Noop{}.Publish(context.Background(), Event{Entity: "school", Action: ActionCreated}))
}

func TestRedisPublish(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	sub := client.Subscribe(context.Background(), Channel)
	defer sub.Close()
	_, err := sub.Receive(context.Background())
	require.NoError(t, err)

	pub := NewRedis(client)
	evt := Event{
		Entity:     "student",
		Action:     ActionTransferred,
		EntityID:   "ST1",
		SchoolID:   "S2",
		Actor:      "U1",
		OccurredAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, pub.Publish(context.Background(), evt))

	select {
	case msg := <-sub.Channel():
		var got Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, evt, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no message on events channel")
	}
}

func TestRedisPublishConnectionError(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	mr.Close()

	err := NewRedis(client).Publish(context.Background(), Event{Entity: "school", Action: ActionDeleted})
	assert.Error(t, err)
}
