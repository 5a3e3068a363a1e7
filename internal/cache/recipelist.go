package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/taochow-backend/internal/logger"
	"github.com/yungbote/taochow-backend/internal/types"
)

// RecipeListCache is a best-effort cache for the full recipe listing. Cache
// failures only cost a storage round-trip; they are never surfaced to callers.
type RecipeListCache interface {
	Get(ctx context.Context) ([]*types.Recipe, bool)
	Set(ctx context.Context, recipes []*types.Recipe)
	Invalidate(ctx context.Context)
	Close() error
}

type recipeListCache struct {
	log *logger.Logger
	rdb *goredis.Client
	key string
	ttl time.Duration
}

// NewRecipeListCache connects using REDIS_ADDR and fails when it is unset;
// main only wires the cache when the variable is present.
func NewRecipeListCache(log *logger.Logger) (RecipeListCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &recipeListCache{
		log: log.With("service", "RecipeListCache"),
		rdb: rdb,
		key: "taochow:recipes",
		ttl: 60 * time.Second,
	}, nil
}

func (c *recipeListCache) Get(ctx context.Context) ([]*types.Recipe, bool) {
	raw, err := c.rdb.Get(ctx, c.key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Debug("Cache read failed", "error", err)
		}
		return nil, false
	}
	var recipes []*types.Recipe
	if err := json.Unmarshal(raw, &recipes); err != nil {
		c.log.Debug("Cache payload unreadable, dropping it", "error", err)
		c.Invalidate(ctx)
		return nil, false
	}
	return recipes, true
}

func (c *recipeListCache) Set(ctx context.Context, recipes []*types.Recipe) {
	raw, err := json.Marshal(recipes)
	if err != nil {
		c.log.Debug("Cache encode failed", "error", err)
		return
	}
	if err := c.rdb.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		c.log.Debug("Cache write failed", "error", err)
	}
}

func (c *recipeListCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, c.key).Err(); err != nil {
		c.log.Debug("Cache invalidation failed", "error", err)
	}
}

func (c *recipeListCache) Close() error {
	return c.rdb.Close()
}
