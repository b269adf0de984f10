package complaint

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestComplaint(t *testing.T) *Complaint {
	t.Helper()
	c, err := NewComplaint(uuid.New(), uuid.New(), uuid.New(), CategoryPlumbing, "Leaking tap", "Kitchen tap drips constantly")
	require.NoError(t, err)
	return c
}

func TestNewComplaint(t *testing.T) {
	t.Run("opens in OPEN status", func(t *testing.T) {
		c := newTestComplaint(t)
		assert.Equal(t, StatusOpen, c.Status)
		assert.Empty(t, c.Resolution)
		assert.Nil(t, c.ResolvedAt)
	})

	t.Run("requires subject and valid category", func(t *testing.T) {
		_, err := NewComplaint(uuid.New(), uuid.New(), uuid.New(), CategoryPlumbing, "  ", "desc")
		assert.Error(t, err)
		_, err = NewComplaint(uuid.New(), uuid.New(), uuid.New(), Category("GARDENING"), "subject", "desc")
		assert.Error(t, err)
	})

	t.Run("requires tenant, site and unit", func(t *testing.T) {
		_, err := NewComplaint(uuid.Nil, uuid.New(), uuid.New(), CategoryOther, "s", "")
		assert.Error(t, err)
		_, err = NewComplaint(uuid.New(), uuid.Nil, uuid.New(), CategoryOther, "s", "")
		assert.Error(t, err)
		_, err = NewComplaint(uuid.New(), uuid.New(), uuid.Nil, CategoryOther, "s", "")
		assert.Error(t, err)
	})
}

func TestComplaintTransitions(t *testing.T) {
	t.Run("full lifecycle", func(t *testing.T) {
		c := newTestComplaint(t)

		require.NoError(t, c.TransitionTo(StatusInProgress))
		require.NoError(t, c.Resolve("Replaced washer", time.Now()))
		assert.Equal(t, StatusResolved, c.Status)
		assert.NotNil(t, c.ResolvedAt)

		require.NoError(t, c.TransitionTo(StatusClosed))
		assert.Equal(t, StatusClosed, c.Status)
	})

	t.Run("cannot resolve without work in progress", func(t *testing.T) {
		c := newTestComplaint(t)
		assert.Error(t, c.TransitionTo(StatusResolved))
	})

	t.Run("closed is terminal", func(t *testing.T) {
		c := newTestComplaint(t)
		require.NoError(t, c.TransitionTo(StatusClosed))
		assert.Error(t, c.TransitionTo(StatusOpen))
		assert.Error(t, c.TransitionTo(StatusInProgress))
	})

	t.Run("resolved can be reopened to in-progress", func(t *testing.T) {
		c := newTestComplaint(t)
		require.NoError(t, c.TransitionTo(StatusInProgress))
		require.NoError(t, c.Resolve("Tightened joint", time.Now()))
		require.NoError(t, c.TransitionTo(StatusInProgress))
	})

	t.Run("resolution note is required", func(t *testing.T) {
		c := newTestComplaint(t)
		require.NoError(t, c.TransitionTo(StatusInProgress))
		assert.Error(t, c.Resolve("   ", time.Now()))
	})

	t.Run("version bumps on transition", func(t *testing.T) {
		c := newTestComplaint(t)
		before := c.GetVersion()
		require.NoError(t, c.TransitionTo(StatusInProgress))
		assert.Equal(t, before+1, c.GetVersion())
	})
}
