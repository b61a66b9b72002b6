// Package lifecycle mounts apps into a server.
//
// A mount run discovers the project's apps, resolves the selection and then,
// for every selected app, loads its descriptor, builds its routing table and
// merges it into the target. The target's Ledger makes repeated runs safe:
// an app is merged at most once, and two apps cannot share a URL prefix.
//
// Example Usage:
//
//	p := lifecycle.NewPipeline(registry.Default, nil, logger).WithMetrics(metrics)
//	names, err := p.Mount(ctx, srv, selection.Options{Include: []string{"posts"}})
package lifecycle
