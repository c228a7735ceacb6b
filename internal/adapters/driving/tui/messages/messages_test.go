package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKind(t *testing.T) {
	assert.Equal(t, "Track", LookupTrack.String())
	assert.Equal(t, "Playlist", LookupPlaylist.String())
	assert.Equal(t, LookupPlaylist, LookupTrack.Next())
	assert.Equal(t, LookupTrack, LookupPlaylist.Next())
}
