package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGinPath(t *testing.T) {
	tests := map[string]string{
		"/":                       "/",
		"/posts":                  "/posts",
		"/posts/{id}":             "/posts/:id",
		"/posts/comments/{c_id}":  "/posts/comments/:c_id",
		"/files/{rest:path}":      "/files/*rest",
		"/users/{id:int}/avatar":  "/users/:id/avatar",
		"/literal/{}":             "/literal/{}",
		"/mixed/{a}/and/{b:path}": "/mixed/:a/and/*b",
	}
	for in, want := range tests {
		assert.Equal(t, want, ginPath(in), in)
	}
}
