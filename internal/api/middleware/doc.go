// Package middleware provides the HTTP middleware of a SuperKit server.
//
// Middleware stack includes:
//   - CORS: Cross-origin resource sharing with configurable origins
//   - RateLimit: Per-IP token bucket rate limiting with idle client eviction
//   - RequestID: X-Request-ID propagation
//   - AccessLog: One structured log line per request
//
// Example Usage:
//
//	router.Use(middleware.RequestID())
//	router.Use(middleware.CORS(cfg.CORS.AllowOrigins...))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
