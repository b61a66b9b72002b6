// Package scaffold generates app skeletons from embedded templates and keeps
// the project's apps.go registry file in sync with the apps on disk.
package scaffold
