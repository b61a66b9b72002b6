// Package routing builds the route tables that apps contribute to a server.
//
// Components:
//   - Table: ordered method+path registrations with a prefix and tags
//   - Group: hierarchical namespace; all groups of one tree share a Table
//   - Units: controller unit cache running deferred route declarations once
//
// Routes are declared against gin handler types but are not bound to an
// engine here; the server replays the final table onto gin.
//
// Path joining:
//
//	root := routing.NewGroup(nil, "")
//	a := routing.NewGroup(root, "a")
//	b := routing.NewGroup(a, "/b/")
//	b.Path("c")   // "/a/b/c"
//	root.Path("") // "/"
//
// Controller packages declare routes lazily so that only mounted apps pay for
// them:
//
//	func init() {
//	    routing.Defer("posts/controllers/comments", func() error {
//	        Router.GET("{c_id}", show)
//	        return nil
//	    })
//	}
package routing
