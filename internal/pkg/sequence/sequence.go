// Package sequence allocates monotonic per-key numbers for document numbering.
package sequence

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Generator hands out the next value for key. The result is always greater than
// floor and greater than any value previously returned for the same key.
type Generator interface {
	Next(ctx context.Context, key string, floor int64) (int64, error)
}

// MemoryGenerator keeps counters in process memory behind a per-key mutex.
type MemoryGenerator struct {
	mu       sync.Mutex
	counters map[string]*counter
}

type counter struct {
	mu    sync.Mutex
	value int64
}

func NewMemoryGenerator() *MemoryGenerator {
	return &MemoryGenerator{counters: make(map[string]*counter)}
}

func (g *MemoryGenerator) counterFor(key string) *counter {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, ok := g.counters[key]
	if !ok {
		c = &counter{}
		g.counters[key] = c
	}
	return c
}

func (g *MemoryGenerator) Next(ctx context.Context, key string, floor int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	c := g.counterFor(key)
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = max(c.value, floor) + 1
	return c.value, nil
}

// nextScript increments KEYS[1], lifting it to ARGV[1]+1 first when the stored value lags behind.
var nextScript = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
local floor = tonumber(ARGV[1])
if current < floor then
	current = floor
end
current = current + 1
redis.call('SET', KEYS[1], current)
return current
`)

// RedisGenerator stores counters in redis; the Lua script keeps read and write atomic.
type RedisGenerator struct {
	client redis.Scripter
	prefix string
}

func NewRedisGenerator(client redis.Scripter, prefix string) *RedisGenerator {
	return &RedisGenerator{client: client, prefix: prefix}
}

func (g *RedisGenerator) Next(ctx context.Context, key string, floor int64) (int64, error) {
	n, err := nextScript.Run(ctx, g.client, []string{g.prefix + key}, floor).Int64()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate sequence %s: %w", key, err)
	}
	return n, nil
}
