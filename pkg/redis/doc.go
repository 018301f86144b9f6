// Package redis opens the optional Redis connection that backs the shared
// forecast summary cache.
//
// When several Weather Sage instances run behind a load balancer, keeping the
// hourly summary in Redis means the LLM is asked once per hour for the whole
// fleet instead of once per instance.
//
//	client, err := redis.Open(ctx, cfg.RedisURL, redis.WithPoolSize(20))
//	if err != nil {
//	    return err
//	}
//	app := sage.New(
//	    sage.WithHealthChecks(sage.WithReadinessCheck("redis", redis.Healthcheck(client))),
//	    sage.WithShutdownHook(redis.Shutdown(client)),
//	)
//
// Open pings with retry and linear backoff so a Redis container that starts
// slightly after the app does not fail the boot.
package redis
