package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	githubReposKeyPrefix = "github:repos:%s"
	postsListKey         = "posts:list"
)

const (
	// GithubTTL bounds staleness of the external repository listing; the
	// upstream rate limit is far tighter than ours.
	GithubTTL = 10 * time.Minute
	// PostsTTL is short because the feed is invalidated on every write anyway.
	PostsTTL = 2 * time.Minute
)

// GithubReposKey returns the cache key for a user's repository listing.
func GithubReposKey(username string) string {
	return fmt.Sprintf(githubReposKeyPrefix, username)
}

// PostsListKey returns the cache key for the global post feed.
func PostsListKey() string {
	return postsListKey
}

// GetJSON fetches key and unmarshals it into dest. Returns found=false on a
// miss or when no cache is configured.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	s, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, b, ttl).Err()
}

// Aside tries Redis first; on miss it calls fetch (which must populate dest),
// then stores the result with ttl. Cache write failures are swallowed.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := GetJSON(ctx, key, dest)
	if err == nil && found {
		return nil
	}

	if err := fetch(); err != nil {
		return err
	}

	_ = SetJSON(ctx, key, dest, ttl)
	return nil
}

// Invalidate removes a key, best-effort.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidatePostsList drops the cached feed after any post mutation.
func InvalidatePostsList(ctx context.Context) {
	Invalidate(ctx, postsListKey)
}
