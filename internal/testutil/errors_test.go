package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockErrorsAreDistinct(t *testing.T) {
	t.Parallel()

	assert.NotErrorIs(t, ErrMockStorage, ErrMockNetwork)
	assert.NotErrorIs(t, ErrMockStorage, ErrMockNotFound)
	assert.NotErrorIs(t, ErrMockNetwork, ErrMockNotFound)
}
