package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSConfig returns the cross-origin policy for origins. With no origins any
// origin is allowed without credentials; explicit origins allow credentials.
// The request id header is accepted and exposed either way.
func CORSConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AddAllowHeaders("Accept", "Authorization", "Cache-Control", "X-Requested-With", RequestIDHeader)
	cfg.AddExposeHeaders(RequestIDHeader)

	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = append([]string(nil), origins...)
	cfg.AllowCredentials = true
	return cfg
}

// CORS returns the CORS middleware for origins.
func CORS(origins ...string) gin.HandlerFunc {
	return cors.New(CORSConfig(origins))
}
