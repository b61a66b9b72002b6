// Package types provides small value types shared by the app discovery,
// selection and mount packages.
//
// Core Types:
//   - NameSet: unordered set of app names with sorted export
//
// Example Usage:
//
//	discovered := types.NewNameSet("posts", "users")
//	if discovered.Has("posts") {
//	    names := discovered.Sorted()
//	}
package types
