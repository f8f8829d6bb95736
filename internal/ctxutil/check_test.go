package ctxutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanceled(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Canceled(context.Background()))

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Canceled(canceled), context.Canceled)

	expired, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	assert.ErrorIs(t, Canceled(expired), context.DeadlineExceeded)
}
