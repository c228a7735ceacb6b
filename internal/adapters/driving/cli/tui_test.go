package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tunesearch/internal/adapters/driving/tui"
)

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
	assert.Equal(t, needsIndex, tuiCmd.Annotations[annotationNeeds])
}

func TestTUICmd_RequiresSearch(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	searchService = nil

	_, err := execute(t, "tui")

	require.Error(t, err)
	assert.ErrorIs(t, err, tui.ErrMissingSearchService)
}
