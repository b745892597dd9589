package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/umalmyha/contacts/internal/model"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	cachedContactTimeToLive  = 10 * time.Minute
	deletedContactTimeToLive = 30 * time.Second
	deletedContactMarker     = "deleted"
)

// setUnlessDeleted overwrites cached contact unless it was marked as deleted
var setUnlessDeleted = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[2] then
	return 0
end
redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[3])
return 1
`)

// ContactCache represents behavior of contacts cache.
// Create only fills missing entries, so a late read-through fill never overwrites newer data.
// Set overwrites the entry after a write, DeleteByID marks the id as deleted for a short period,
// so neither fills nor overwrites can bring the contact back while in-flight reads complete.
type ContactCache interface {
	FindByID(context.Context, string) (*model.Contact, error)
	Create(context.Context, *model.Contact) error
	Set(context.Context, *model.Contact) error
	DeleteByID(context.Context, string) error
}

type redisContactCache struct {
	client *redis.Client
}

// NewRedisContactCache builds ContactCache backed by redis
func NewRedisContactCache(client *redis.Client) ContactCache {
	return &redisContactCache{client: client}
}

func (r *redisContactCache) FindByID(ctx context.Context, id string) (*model.Contact, error) {
	res, err := r.client.Get(ctx, r.key(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	if res == deletedContactMarker {
		return nil, nil
	}

	var c model.Contact
	if err := msgpack.Unmarshal([]byte(res), &c); err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *redisContactCache) Create(ctx context.Context, c *model.Contact) error {
	encoded, err := msgpack.Marshal(c)
	if err != nil {
		return err
	}

	if _, err := r.client.SetNX(ctx, r.key(c.ID), encoded, cachedContactTimeToLive).Result(); err != nil {
		return err
	}
	return nil
}

func (r *redisContactCache) Set(ctx context.Context, c *model.Contact) error {
	encoded, err := msgpack.Marshal(c)
	if err != nil {
		return err
	}

	keys := []string{r.key(c.ID)}
	if err := setUnlessDeleted.Run(ctx, r.client, keys, encoded, deletedContactMarker, cachedContactTimeToLive.Milliseconds()).Err(); err != nil {
		return err
	}
	return nil
}

func (r *redisContactCache) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.client.Set(ctx, r.key(id), deletedContactMarker, deletedContactTimeToLive).Result(); err != nil {
		return err
	}
	return nil
}

func (r *redisContactCache) key(id string) string {
	return fmt.Sprintf("contact:%s", id)
}

type nopContactCache struct{}

// NewNopContactCache builds ContactCache which never holds anything, used when redis is not configured
func NewNopContactCache() ContactCache {
	return nopContactCache{}
}

func (nopContactCache) FindByID(context.Context, string) (*model.Contact, error) {
	return nil, nil
}

func (nopContactCache) Create(context.Context, *model.Contact) error {
	return nil
}

func (nopContactCache) Set(context.Context, *model.Contact) error {
	return nil
}

func (nopContactCache) DeleteByID(context.Context, string) error {
	return nil
}
