// Package http provides the built-in endpoints of a SuperKit server.
//
// Endpoints:
//   - GET /        application info
//   - GET /health  installed apps and route count
//   - GET <docs>   route listing grouped by tag
package http
