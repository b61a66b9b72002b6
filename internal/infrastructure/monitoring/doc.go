/*
Package monitoring provides Prometheus metrics for a SuperKit server.

# Overview

Each Metrics value owns a private prometheus.Registry. It tracks HTTP
traffic plus the app lifecycle: discovery results, skipped candidates,
mounted apps, aborted mounts and the size of the routing table.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	metrics.SetAppsDiscovered(2)
	metrics.IncAppsMounted("posts")
*/
package monitoring
