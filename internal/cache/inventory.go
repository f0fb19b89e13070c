package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	UserKeyPrefix        = "user:%d"
	EpisodeKeyPrefix     = "episode:%d"
	EpisodeSlugKeyPrefix = "episode_slug:%s"
	BookListKey          = "books:all"
)

const (
	UserTTL    = 5 * time.Minute
	EpisodeTTL = 30 * time.Minute
	BookTTL    = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func EpisodeKey(episodeID uint) string {
	return fmt.Sprintf(EpisodeKeyPrefix, episodeID)
}

func EpisodeSlugKey(slug string) string {
	return fmt.Sprintf(EpisodeSlugKeyPrefix, slug)
}

// Aside implements the cache-aside pattern: on a hit, dest is filled from the
// cached JSON; on a miss, fill is invoked and its result cached with the given
// TTL. A nil client degrades to calling fill directly.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fill func() error) error {
	if client != nil {
		if raw, err := client.Get(ctx, key).Bytes(); err == nil {
			if unmarshalErr := json.Unmarshal(raw, dest); unmarshalErr == nil {
				return nil
			}
			// Corrupt entry; drop it and fall through to the source.
			client.Del(ctx, key)
		}
	}

	if err := fill(); err != nil {
		return err
	}

	if client != nil {
		if raw, err := json.Marshal(dest); err == nil {
			client.Set(ctx, key, raw, ttl)
		}
	}
	return nil
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateEpisode(ctx context.Context, episodeID uint, slug string) {
	Invalidate(ctx, EpisodeKey(episodeID))
	if slug != "" {
		Invalidate(ctx, EpisodeSlugKey(slug))
	}
}

func InvalidateBooks(ctx context.Context) {
	Invalidate(ctx, BookListKey)
}
