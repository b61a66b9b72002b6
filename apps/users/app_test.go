package users

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptor(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.Validate())

	table, err := cfg.BuildRouter(nil)
	require.NoError(t, err)

	var keys []string
	for _, r := range table.Routes() {
		keys = append(keys, r.Key())
	}
	assert.Equal(t, []string{"GET /users", "GET /users/{user_id}"}, keys)
}

func TestGetUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/users/:user_id", getUser)

	tests := []struct {
		path string
		want int
	}{
		{"/users/1", http.StatusOK},
		{"/users/42", http.StatusNotFound},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
		assert.Equal(t, tt.want, w.Code, tt.path)
	}
}
