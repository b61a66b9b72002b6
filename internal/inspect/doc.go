// Package inspect produces the reports behind the "superkit apps" commands.
// It never prints; rendering is left to the caller.
package inspect
