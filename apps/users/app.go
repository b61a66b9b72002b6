// Package users is a demo app serving a fixed user list.
package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/SuperKit/internal/domain/app"
	"github.com/GriffinCanCode/SuperKit/internal/domain/registry"
	"github.com/GriffinCanCode/SuperKit/internal/routing"
)

// Name is the app name.
const Name = "users"

type user struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var directory = []user{
	{ID: "1", Name: "Ada"},
	{ID: "2", Name: "Grace"},
}

func init() {
	registry.Register(Name, New)
}

// New returns the users descriptor.
func New() *app.Config {
	routes := routing.NewTable()
	routes.GET("", listUsers)
	routes.GET("{user_id}", getUser)

	return &app.Config{
		Name:      Name,
		URLPrefix: "/users",
		Tags:      []string{"users"},
		Routers:   []any{routes},
	}
}

func listUsers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"users": directory})
}

func getUser(c *gin.Context) {
	id := c.Param("user_id")
	for _, u := range directory {
		if u.ID == id {
			c.JSON(http.StatusOK, u)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
}
