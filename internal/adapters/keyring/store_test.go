package keyring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"
)

func TestStore_RoundTrip(t *testing.T) {
	gokeyring.MockInit()
	s := NewStore("")

	require.NoError(t, s.Set("prod", "s3cret"))
	got, err := s.Get("prod")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)

	require.NoError(t, s.Delete("prod"))
	got, err = s.Get("prod")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_MissingEntries(t *testing.T) {
	gokeyring.MockInit()
	s := NewStore("docdrift-test")

	got, err := s.Get("nope")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, s.Delete("nope"))
}
