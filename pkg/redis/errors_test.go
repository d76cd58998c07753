package redis_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/storykit/pkg/redis"
)

func TestIsNil(t *testing.T) {
	t.Parallel()

	assert.True(t, redis.IsNil(goredis.Nil))
	assert.True(t, redis.IsNil(fmt.Errorf("hget: %w", goredis.Nil)))
	assert.False(t, redis.IsNil(errors.New("connection refused")))
	assert.False(t, redis.IsNil(nil))
}

func TestConnect_Validation(t *testing.T) {
	t.Parallel()

	_, err := redis.Connect(context.Background(), redis.Config{})
	assert.ErrorIs(t, err, redis.ErrEmptyConnectionURL)

	_, err = redis.Connect(context.Background(), redis.Config{ConnectionURL: "://bad", ConnectTimeout: 1})
	assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)
}
