// Package registry resolves and discovers SuperKit apps.
//
// App packages register a descriptor factory from init():
//
//	func init() {
//		registry.Register("posts", New)
//	}
//
// Components:
//   - Catalog: named factories plus the search path they are checked against
//   - Discoverer: scans a project's apps directory and probes every candidate
//
// Discovery never fails. Directories that are not apps are reported as
// Diagnostic values and left out of the result.
//
// Example Usage:
//
//	d := registry.NewDiscoverer(registry.Default, logger).WithMetrics(metrics)
//	names, diags := d.Discover(ctx, ".")
package registry
