package infra

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// CatalogChannel is the redis pub/sub channel storefront clients subscribe to.
const CatalogChannel = "catalog:updated"

// CatalogEvent is broadcast whenever the product catalog changes.
type CatalogEvent struct {
	Event     string    `json:"event"` // always "productsUpdated"
	ProductID string    `json:"productId,omitempty"`
	Action    string    `json:"action"` // "created" | "updated" | "deleted"
	At        time.Time `json:"at"`
}

// CatalogNotifier broadcasts catalog changes. Publishing is fire-and-forget:
// a failed publish is logged, never surfaced to the request.
type CatalogNotifier interface {
	ProductsUpdated(ctx context.Context, productID, action string)
}

// RedisNotifier publishes catalog events over redis pub/sub.
type RedisNotifier struct {
	rdb *redis.Client
}

func NewRedisNotifier(rdb *redis.Client) *RedisNotifier {
	return &RedisNotifier{rdb: rdb}
}

func (n *RedisNotifier) ProductsUpdated(ctx context.Context, productID, action string) {
	payload, err := json.Marshal(CatalogEvent{
		Event:     "productsUpdated",
		ProductID: productID,
		Action:    action,
		At:        time.Now().UTC(),
	})
	if err != nil {
		log.Error().Err(err).Msg("notifier: marshal catalog event")
		return
	}
	if err := n.rdb.Publish(ctx, CatalogChannel, payload).Err(); err != nil {
		log.Warn().Err(err).Str("action", action).Msg("notifier: publish catalog event failed")
	}
}

// NoopNotifier satisfies CatalogNotifier when redis is unavailable (tests).
type NoopNotifier struct{}

func (NoopNotifier) ProductsUpdated(context.Context, string, string) {}
