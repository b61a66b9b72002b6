// Package server provides the SuperKit host application.
//
// A Server owns one gin engine. Apps are merged into it by MountApps, which
// may succeed at most once per server, through the lifecycle pipeline.
//
// Server Lifecycle:
//  1. Load configuration (defaults, settings file, environment)
//  2. Initialize logger and metrics
//  3. Record settings in the runtime registry
//  4. Setup middleware and built-in routes
//  5. Mount the selected apps
//  6. Serve until the context is cancelled, then shut down gracefully
//
// Example Usage:
//
//	cfg, err := config.Load(".")
//	srv, err := server.New(cfg, server.Options{})
//	if err := srv.MountApps(ctx, server.SelectionFromConfig(cfg)); err != nil {
//	    return err
//	}
//	return srv.Run(ctx)
package server
