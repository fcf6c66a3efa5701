package tokenstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestStore_SetGetClear(t *testing.T) {
	keyring.MockInit()
	s := New("")

	_, err := s.Get("parent-1")
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, s.Set("parent-1", " tok-123 "))
	tok, err := s.Get("parent-1")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok)

	require.NoError(t, s.Clear("parent-1"))
	require.NoError(t, s.Clear("parent-1"))

	_, err = s.Get("parent-1")
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestStore_SetRequiresValues(t *testing.T) {
	keyring.MockInit()
	assert.Error(t, New("svc").Set("", "tok"))
	assert.Error(t, New("svc").Set("acc", " "))
}
