// Package health provides liveness and readiness HTTP handlers.
//
// Readiness runs named checks concurrently under a shared timeout:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"redis": redis.Healthcheck(client),
//	}))
//
// Handlers answer in plain text ("OK" or "Service Unavailable") unless the
// client asks for JSON with an Accept header or ?format=json:
//
//	{"status":"unhealthy","checks":{"redis":{"status":"unhealthy","error":"..."}}}
package health
