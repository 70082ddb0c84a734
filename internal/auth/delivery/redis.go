package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultOutboxKey is the list RedisOutbox pushes to when none is configured.
const DefaultOutboxKey = "emailauth:outbox"

// OutboxEntry is the JSON document pushed for each code. A separate mailer
// pops entries and sends them.
type OutboxEntry struct {
	To        string    `json:"to"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
	Site      string    `json:"site,omitempty"`
}

// RedisOutbox hands codes to an external mailer through a Redis list.
type RedisOutbox struct {
	Client   redis.Cmdable
	Key      string
	SiteName string
}

// NewRedisClient connects to addr and pings it.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func (o *RedisOutbox) DeliverCode(ctx context.Context, msg Message) error {
	key := o.Key
	if key == "" {
		key = DefaultOutboxKey
	}

	payload, err := json.Marshal(OutboxEntry{
		To:        msg.To,
		Code:      msg.Code,
		ExpiresAt: msg.ExpiresAt.UTC(),
		Site:      o.SiteName,
	})
	if err != nil {
		return err
	}

	if err := o.Client.RPush(ctx, key, payload).Err(); err != nil {
		return fmt.Errorf("outbox push: %w", err)
	}
	return nil
}
