// Package redis opens go-redis clients for the session store and exposes
// the hooks the application needs around them.
//
//	client, err := redis.Open(ctx, os.Getenv("REDIS_URL"), redis.WithRetry(5, time.Second))
//	if err != nil {
//		return err
//	}
//
//	app := afoslt.New(
//		afoslt.WithSessionStore(session.NewRedisStore(client)),
//		afoslt.WithHealthChecks(afoslt.Check("redis", redis.Healthcheck(client))),
//	)
//	err = afoslt.Run(app, afoslt.ShutdownHook(redis.Shutdown(client)))
package redis
