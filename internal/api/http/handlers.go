package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/SuperKit/internal/routing"
)

// DefaultTag groups routes declared without tags.
const DefaultTag = "default"

// Source is the server state the handlers report on.
type Source interface {
	InstalledApps() []string
	Routes() []routing.Route
}

// Info describes the running application.
type Info struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	DocsURL     string `json:"docs_url,omitempty"`
}

// Handlers contains the built-in HTTP handlers
type Handlers struct {
	info    Info
	source  Source
	started time.Time
}

// NewHandlers creates a new handler set
func NewHandlers(info Info, source Source) *Handlers {
	return &Handlers{
		info:    info,
		source:  source,
		started: time.Now(),
	}
}

// Root describes the application
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "online",
		"app":    h.info,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	apps := h.source.InstalledApps()
	if apps == nil {
		apps = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"installed_apps": apps,
		"routes":         len(h.source.Routes()),
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	})
}

// Docs lists the registered routes grouped by tag
func (h *Handlers) Docs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title":   h.info.Title,
		"version": h.info.Version,
		"groups":  GroupByTag(h.source.Routes()),
	})
}

// RouteDoc is one documented route.
type RouteDoc struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// TagGroup is the set of routes sharing a tag.
type TagGroup struct {
	Tag    string     `json:"tag"`
	Routes []RouteDoc `json:"routes"`
}

// GroupByTag groups routes by tag, in order of first appearance. A route with
// several tags is listed under each of them.
func GroupByTag(routes []routing.Route) []TagGroup {
	groups := []TagGroup{}
	index := make(map[string]int)

	for _, r := range routes {
		tags := r.Tags
		if len(tags) == 0 {
			tags = []string{DefaultTag}
		}
		for _, tag := range tags {
			i, ok := index[tag]
			if !ok {
				i = len(groups)
				index[tag] = i
				groups = append(groups, TagGroup{Tag: tag})
			}
			groups[i].Routes = append(groups[i].Routes, RouteDoc{Method: r.Method, Path: r.Path})
		}
	}
	return groups
}
