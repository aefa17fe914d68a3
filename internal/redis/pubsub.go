package redisx

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// EntityPubSub fans out entity-changed notifications (orders, tickets,
// assignments) so other app instances can drop stale cache entries.
type EntityPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewEntityPubSub(rdb *redis.Client) *EntityPubSub {
	return &EntityPubSub{
		rdb:     rdb,
		channel: ChannelEntityChanged(),
	}
}

type entityChangedMsg struct {
	Kind     string `json:"kind"`
	EntityID string `json:"entity_id"`
	TsUnix   int64  `json:"ts_unix"`
}

func (p *EntityPubSub) PublishEntityChanged(ctx context.Context, kind, entityID string) error {
	msg := entityChangedMsg{
		Kind:     kind,
		EntityID: entityID,
		TsUnix:   time.Now().Unix(),
	}

	b, _ := json.Marshal(msg)

	return p.rdb.Publish(ctx, p.channel, b).Err()
}

func (p *EntityPubSub) Subscribe(ctx context.Context, handler func(ctx context.Context, kind, entityID string)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var ev entityChangedMsg
			if err := json.Unmarshal([]byte(m.Payload), &ev); err == nil && ev.EntityID != "" {
				handler(ctx, ev.Kind, ev.EntityID)
			}
		}
	}
}
