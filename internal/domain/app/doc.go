// Package app defines the app descriptor.
//
// An app is a directory under the project's apps/ folder whose Go package
// registers a Factory returning a *Config:
//
//	func init() {
//	    registry.Register("posts", func() *app.Config {
//	        return &app.Config{
//	            Name:      "posts",
//	            URLPrefix: "/posts",
//	            Tags:      []string{"Posts"},
//	            Routers:   []any{controllers.Router},
//	        }
//	    })
//	}
//
// BuildRouter turns the descriptor into one namespaced routing table.
package app
