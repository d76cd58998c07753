package usage

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/storykit/pkg/period"
	pkgredis "github.com/dmitrymomot/storykit/pkg/redis"
)

// expiryGrace keeps a closed window readable for a while after it ends.
const expiryGrace = 7 * 24 * time.Hour

// RedisStore keeps one hash per user and window, with a field per resource:
//
//	<prefix>:usage:<user>:<period>:<start unix>  character=3 story=7
//
// Weekly and monthly hashes expire after their window closes; lifetime
// hashes never expire.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "storykit"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Get(ctx context.Context, key Key) (int64, error) {
	n, err := s.client.HGet(ctx, s.hashKey(key), string(key.Resource)).Int64()
	if err != nil {
		if pkgredis.IsNil(err) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return n, nil
}

func (s *RedisStore) Increment(ctx context.Context, key Key, periodEnd *time.Time) (int64, error) {
	hk := s.hashKey(key)

	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.HIncrBy(ctx, hk, string(key.Resource), 1)
		if periodEnd != nil {
			pipe.ExpireAt(ctx, hk, periodEnd.Add(expiryGrace))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (s *RedisStore) List(ctx context.Context, userID uuid.UUID) ([]Counter, error) {
	pattern := fmt.Sprintf("%s:usage:%s:*", s.prefix, userID)

	var counters []Counter
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		hk := iter.Val()
		p, start, ok := s.parseHashKey(hk, userID)
		if !ok {
			continue
		}
		fields, err := s.client.HGetAll(ctx, hk).Result()
		if err != nil {
			return nil, err
		}
		for field, raw := range fields {
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				continue
			}
			counters = append(counters, Counter{
				Key:       Key{UserID: userID, Resource: Resource(field), Period: p, PeriodStart: start},
				PeriodEnd: period.End(p, start),
				Count:     n,
			})
		}
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	slices.SortFunc(counters, func(a, b Counter) int {
		if c := b.PeriodStart.Compare(a.PeriodStart); c != 0 {
			return c
		}
		return strings.Compare(string(a.Resource), string(b.Resource))
	})
	return counters, nil
}

func (s *RedisStore) hashKey(key Key) string {
	return fmt.Sprintf("%s:usage:%s:%s:%d", s.prefix, key.UserID, key.Period, key.PeriodStart.Unix())
}

func (s *RedisStore) parseHashKey(hk string, userID uuid.UUID) (period.Period, time.Time, bool) {
	rest, ok := strings.CutPrefix(hk, fmt.Sprintf("%s:usage:%s:", s.prefix, userID))
	if !ok {
		return "", time.Time{}, false
	}
	rawPeriod, rawStart, ok := strings.Cut(rest, ":")
	if !ok {
		return "", time.Time{}, false
	}
	p, err := period.Parse(rawPeriod)
	if err != nil {
		return "", time.Time{}, false
	}
	sec, err := strconv.ParseInt(rawStart, 10, 64)
	if err != nil {
		return "", time.Time{}, false
	}
	return p, time.Unix(sec, 0).UTC(), true
}
