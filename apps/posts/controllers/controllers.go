// Package controllers is the root controller group of the posts app. Each
// child package declares its routes with routing.Defer.
package controllers

import "github.com/GriffinCanCode/SuperKit/internal/routing"

// Unit names the controller package tree.
const Unit = "posts/controllers"

// Root is the group every posts controller registers under.
var Root = routing.NewGroup(nil, "", routing.WithOrigin(Unit))

func init() {
	routing.Defer(Unit, func() error {
		return Root.MountControllers(Unit, true)
	})
}
