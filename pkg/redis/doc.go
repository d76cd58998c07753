// Package redis connects to Redis with go-redis/v9 and exposes a readiness
// probe. The client backs the optional Redis usage counter store, where
// HINCRBY gives an atomic per-window increment.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
package redis
