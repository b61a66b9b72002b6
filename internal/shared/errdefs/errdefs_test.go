package errdefs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	assert.ErrorIs(t, NotFound("apps dir %q", "/x"), ErrNotFound)
	assert.ErrorIs(t, Configuration("bad"), ErrConfiguration)
	assert.ErrorIs(t, State("twice"), ErrState)
	assert.NotErrorIs(t, State("twice"), ErrConfiguration)
}

func TestLoadErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := error(&LoadError{Unit: "posts", Err: cause})

	assert.ErrorIs(t, err, ErrLoad)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), `"posts"`)
}

func TestTypedConfigurationErrors(t *testing.T) {
	unknown := error(&UnknownAppsError{Names: []string{"a", "b"}})
	assert.ErrorIs(t, unknown, ErrConfiguration)
	assert.Equal(t, "configuration error: unknown apps: [a, b]", unknown.Error())

	conflict := error(&PrefixConflictError{Prefix: "/x", First: "a", Second: "b"})
	var pc *PrefixConflictError
	assert.True(t, errors.As(conflict, &pc))
	assert.Equal(t, "/x", pc.Prefix)
	assert.ErrorIs(t, conflict, ErrConfiguration)
}
