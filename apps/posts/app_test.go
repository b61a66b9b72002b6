package posts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/SuperKit/internal/domain/registry"
	"github.com/GriffinCanCode/SuperKit/internal/routing"
)

func TestDescriptor(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.Validate())

	table, err := cfg.BuildRouter(routing.DefaultUnits)
	require.NoError(t, err)

	var keys []string
	for _, r := range table.Routes() {
		keys = append(keys, r.Key())
		assert.Contains(t, r.Tags, "posts")
	}
	assert.Equal(t, []string{
		"GET /posts",
		"GET /posts/comments",
		"GET /posts/comments/{c_id}",
	}, keys)
	assert.True(t, routing.DefaultUnits.Imported("posts/controllers/comments"))
}

func TestRegistered(t *testing.T) {
	assert.Contains(t, registry.Default.Names(), Name)
}
