package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	all := []error{
		ErrNotFound,
		ErrAlreadyExists,
		ErrInvalidInput,
		ErrUnsupportedType,
		ErrSourceNotFound,
		ErrMalformedInteger,
		ErrUnsupportedNodeKind,
		ErrResultSetTooLarge,
		ErrStoreUnavailable,
	}

	for i, a := range all {
		assert.NotEmpty(t, a.Error())
		for j, b := range all {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}

func TestErrors_Wrapping(t *testing.T) {
	err := fmt.Errorf("playlist 21: resolving tracks: %w", ErrResultSetTooLarge)

	assert.ErrorIs(t, err, ErrResultSetTooLarge)
	assert.NotErrorIs(t, err, ErrStoreUnavailable)
}
