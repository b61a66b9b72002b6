// Package posts is a demo app serving posts and their comments.
package posts

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/SuperKit/apps/posts/controllers"
	_ "github.com/GriffinCanCode/SuperKit/apps/posts/controllers/comments"
	"github.com/GriffinCanCode/SuperKit/internal/domain/app"
	"github.com/GriffinCanCode/SuperKit/internal/domain/registry"
	"github.com/GriffinCanCode/SuperKit/internal/routing"
)

// Name is the app name.
const Name = "posts"

func init() {
	registry.Register(Name, New)
}

// New returns the posts descriptor.
func New() *app.Config {
	index := routing.NewTable()
	index.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"posts": []gin.H{}})
	})

	return &app.Config{
		Name:      Name,
		URLPrefix: "/posts",
		Tags:      []string{"posts"},
		Routers:   []any{index, controllers.Root},
	}
}
