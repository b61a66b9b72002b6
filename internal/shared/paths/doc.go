// Package paths locates a SuperKit project on disk.
//
// A project is any directory tree containing an apps directory in one of two
// layouts:
//
//	<root>/apps/<app>/app.go        (flat-layout, search root = <root>)
//	<root>/src/apps/<app>/app.go    (src-layout,  search root = <root>/src)
//
// Resolve walks from a start directory towards the filesystem root and stops
// at the nearest ancestor that matches. When both layouts exist at the same
// level, LayoutPriority decides.
//
// # Usage
//
//	project, err := paths.ResolveWorkingDir()
//	if errors.Is(err, errdefs.ErrNotFound) {
//	    // not inside a project
//	}
//	dir := project.AppDir("posts")
package paths
