// Package health provides HTTP handlers for liveness and readiness checks.
//
// [LivenessHandler] always answers OK while the process runs.
// [ReadinessHandler] runs the configured [Checks] in parallel (the redis
// summary cache, the forecast upstream) and answers 503 if any fails.
//
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "redis": redis.Healthcheck(client),
//	}))
//
// Responses are plain text ("OK" / "Service Unavailable") unless the client
// sends Accept: application/json or ?format=json, in which case per-check
// status is reported:
//
//	{"status":"unhealthy","checks":{"redis":{"status":"unhealthy","error":"..."}}}
package health
