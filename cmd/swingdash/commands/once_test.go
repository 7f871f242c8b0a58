package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elcap/swingdash/internal/job"
)

func TestRefreshError(t *testing.T) {
	t.Run("failed wraps the cause", func(t *testing.T) {
		cause := errors.New("disk full")
		err := refreshError(job.OutcomeFailed, cause)

		assert.EqualError(t, err, "refresh failed: disk full")
		assert.ErrorIs(t, err, cause)
	})

	t.Run("busy carries no cause", func(t *testing.T) {
		err := refreshError(job.OutcomeBusy, nil)

		assert.EqualError(t, err, "refresh busy")
	})
}
