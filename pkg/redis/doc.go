// Package redis connects to Redis with retries and exposes a prefixed
// byte cache plus a readiness probe.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	pages := redis.NewCache(client, cfg.KeyPrefix)
//	probe := redis.Healthcheck(client)
//
// Redis is optional for this service; callers check Config.Enabled and use
// an in-memory cache otherwise.
package redis
