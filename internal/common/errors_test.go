package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewUserError("ingest failed", cause)

	assert.Equal(t, "ingest failed: disk full", err.Error())
	assert.ErrorIs(t, err, cause, "the cause must stay reachable through Unwrap")

	var userErr *UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, "ingest failed", userErr.UserMessage)
}

func TestUserErrorWithoutCause(t *testing.T) {
	err := NewUserError("nothing to do", nil)

	assert.Equal(t, "nothing to do", err.Error())
	assert.NoError(t, errors.Unwrap(err))
}
