// Package session keeps the set of deactivated user ids in redis so token
// checks avoid a database round trip.
package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v8"
)

const banSetKey = "crm:banned_users"

// BanList is safe to use with a nil redis client; every call then reports
// "unknown" and callers fall back to the database flag.
type BanList struct {
	rdb *redis.Client
}

func NewBanList(rdb *redis.Client) *BanList {
	return &BanList{rdb: rdb}
}

func (b *BanList) Enabled() bool {
	return b != nil && b.rdb != nil
}

func (b *BanList) Ban(ctx context.Context, userID string) {
	if !b.Enabled() {
		return
	}
	if err := b.rdb.SAdd(ctx, banSetKey, userID).Err(); err != nil {
		slog.Warn("ban list add failed", "user_id", userID, "error", err)
	}
}

func (b *BanList) Unban(ctx context.Context, userID string) {
	if !b.Enabled() {
		return
	}
	if err := b.rdb.SRem(ctx, banSetKey, userID).Err(); err != nil {
		slog.Warn("ban list remove failed", "user_id", userID, "error", err)
	}
}

// IsBanned reports (banned, known). known is false when redis is disabled
// or unreachable.
func (b *BanList) IsBanned(ctx context.Context, userID string) (bool, bool) {
	if !b.Enabled() {
		return false, false
	}
	banned, err := b.rdb.SIsMember(ctx, banSetKey, userID).Result()
	if err != nil {
		slog.Warn("ban list lookup failed", "user_id", userID, "error", err)
		return false, false
	}
	return banned, true
}

// Reset replaces the whole set with ids, so a flushed or fresh redis agrees
// with the database at startup.
func (b *BanList) Reset(ctx context.Context, ids []string) error {
	if !b.Enabled() {
		return nil
	}
	_, err := b.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, banSetKey)
		if len(ids) > 0 {
			members := make([]interface{}, len(ids))
			for i, id := range ids {
				members[i] = id
			}
			p.SAdd(ctx, banSetKey, members...)
		}
		return nil
	})
	return err
}

// Connect parses url and pings the server. An empty url disables redis.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}
