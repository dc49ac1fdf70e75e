package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Leyinc1/manuelbest/internal/domain/models"
)

const (
	teamsKeyPrefix = "workspace:teams:"
	generationKey  = "workspace:teams:gen"
	defaultTTL     = 5 * time.Minute
)

// Connect parses a redis:// URL and checks the server is reachable.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	const op = "storage.cache.Connect"

	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return client, nil
}

// TeamCache keeps team read results under a generation number. Invalidate
// bumps the generation, so a write computed from data read before the bump
// lands under a generation nobody reads any more and simply expires.
type TeamCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewTeamCache(client redis.Cmdable, ttl time.Duration) *TeamCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &TeamCache{client: client, ttl: ttl}
}

func entryKey(gen int64, key string) string {
	return teamsKeyPrefix + strconv.FormatInt(gen, 10) + ":" + key
}

// Generation must be read before loading the data that will be cached.
func (c *TeamCache) Generation(ctx context.Context) (int64, error) {
	const op = "storage.cache.Generation"

	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return gen, nil
}

func (c *TeamCache) Teams(ctx context.Context, gen int64, key string) ([]models.Team, bool, error) {
	const op = "storage.cache.Teams"

	raw, err := c.client.Get(ctx, entryKey(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	var teams []models.Team
	if err := json.Unmarshal(raw, &teams); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	return teams, true, nil
}

// SetTeams stores teams for key under gen. Every entry expires on its own.
func (c *TeamCache) SetTeams(ctx context.Context, gen int64, key string, teams []models.Team) error {
	const op = "storage.cache.SetTeams"

	raw, err := json.Marshal(teams)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := c.client.Set(ctx, entryKey(gen, key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (c *TeamCache) Invalidate(ctx context.Context) error {
	const op = "storage.cache.Invalidate"

	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
