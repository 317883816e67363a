// Package redis wraps go-redis client setup and provides a Redis-backed
// session store.
//
// Connect validates the URL (redis:// or rediss://), opens the client and
// pings it with retries before returning:
//
//	client, err := redis.Connect(ctx, redis.Config{ConnectionURL: "redis://localhost:6379/0", RetryAttempts: 3})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Healthcheck returns a ping function suitable for readiness probes.
//
// SessionStore implements session.Store on any client that offers Get, Set
// and Del. Sessions are stored as JSON under "<prefix>session:token:<token>"
// with a secondary "<prefix>session:id:<id>" index, both expiring with the
// session, so DeleteExpired has nothing to do.
//
// Errors: ErrEmptyConnectionURL, ErrFailedToParseRedisConnString,
// ErrRedisNotReady and ErrHealthcheckFailed. Use errors.Is to check them.
package redis
