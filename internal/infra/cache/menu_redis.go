package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"shawarma/internal/domain/model"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// メニュー1件の読み取りキャッシュ。更新系が必ずDeleteすること。
type MenuRedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewMenuRedisCache(rdb *redis.Client) *MenuRedisCache {
	return &MenuRedisCache{rdb: rdb, ttl: 10 * time.Minute}
}

func key(itemID int64) string {
	return fmt.Sprintf("menu_item:%d", itemID)
}

func (c *MenuRedisCache) Get(ctx context.Context, itemID int64) (model.MenuItem, bool) {
	val, err := c.rdb.Get(ctx, key(itemID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Error().Err(err).Msgf("Error getting menu item %d from cache", itemID)
		}
		return model.MenuItem{}, false
	}

	var item model.MenuItem
	if err := json.Unmarshal([]byte(val), &item); err != nil {
		logger.Error().Err(err).Msgf("Error unmarshalling cached menu item %d", itemID)
		return model.MenuItem{}, false
	}
	return item, true
}

func (c *MenuRedisCache) Set(ctx context.Context, item model.MenuItem) {
	data, err := json.Marshal(item)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key(item.ID), data, c.ttl).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error setting menu item %d in cache", item.ID)
	}
}

func (c *MenuRedisCache) Delete(ctx context.Context, itemID int64) {
	if err := c.rdb.Del(ctx, key(itemID)).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error deleting menu item %d from cache", itemID)
	}
}
