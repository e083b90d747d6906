package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"catering-api/logger"

	"github.com/redis/go-redis/v9"
)

// Client is nil when Redis is not configured or unreachable; every
// helper then degrades to a cache miss.
var Client *redis.Client

func Init(redisURL, addr string) {
	var opt *redis.Options
	switch {
	case redisURL != "":
		parsed, err := redis.ParseURL(redisURL)
		if err != nil {
			logger.Default.Warn("redis_init", "", "invalid REDIS_URL, running without menu cache",
				slog.String("error", err.Error()))
			return
		}
		opt = parsed
	case addr != "":
		opt = &redis.Options{Addr: addr}
	default:
		logger.Default.Info("redis_init", "", "redis not configured, running without menu cache")
		return
	}

	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Default.Warn("redis_init", "", "redis unreachable, running without menu cache",
			slog.String("error", err.Error()))
		_ = client.Close()
		return
	}

	Client = client
	logger.Default.Info("redis_init", "", "redis connected")
}

func Close() {
	if Client != nil {
		_ = Client.Close()
		Client = nil
	}
}

func menusKey(date string) string {
	return "menus:" + date
}

// GetMenus returns the cached response body for the day's menus.
func GetMenus(ctx context.Context, date string) ([]byte, bool) {
	if Client == nil {
		return nil, false
	}
	body, err := Client.Get(ctx, menusKey(date)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Default.Warn("menu_cache", "", "cache read failed", slog.String("error", err.Error()))
		}
		return nil, false
	}
	return body, true
}

func SetMenus(ctx context.Context, date string, body []byte, ttl time.Duration) {
	if Client == nil {
		return
	}
	if err := Client.Set(ctx, menusKey(date), body, ttl).Err(); err != nil {
		logger.Default.Warn("menu_cache", "", "cache write failed", slog.String("error", err.Error()))
	}
}

// InvalidateMenus drops the cached menus for each given date.
func InvalidateMenus(ctx context.Context, dates ...string) {
	if Client == nil || len(dates) == 0 {
		return
	}
	keys := make([]string, 0, len(dates))
	for _, d := range dates {
		keys = append(keys, menusKey(d))
	}
	if err := Client.Del(ctx, keys...).Err(); err != nil {
		logger.Default.Warn("menu_cache", "", "cache invalidation failed", slog.String("error", err.Error()))
	}
}
