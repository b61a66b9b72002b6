package comments

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/SuperKit/apps/posts/controllers"
	"github.com/GriffinCanCode/SuperKit/internal/routing"
)

var group = routing.NewGroup(controllers.Root, "comments")

func init() {
	routing.Defer(controllers.Unit+"/comments", register)
}

func register() error {
	group.GET("", list)
	group.GET("{c_id}", show)
	return nil
}

func list(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"comments": []gin.H{}})
}

func show(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"c_id": c.Param("c_id")})
}
