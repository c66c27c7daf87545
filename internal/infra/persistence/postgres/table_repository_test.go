package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusUpdates(t *testing.T) {
	updates := orderStatusUpdates("Delivered")
	assert.Equal(t, "Delivered", updates["status"])
	assert.Contains(t, updates, "delivered_date")

	// Leaving Delivered must not erase the stored delivery date.
	updates = orderStatusUpdates("Pending")
	assert.Equal(t, "Pending", updates["status"])
	assert.NotContains(t, updates, "delivered_date")
}

func TestIssueStatusUpdates(t *testing.T) {
	solver := uuid.New()

	updates := issueStatusUpdates("Solved", solver)
	assert.Equal(t, "Solved", updates["status"])
	assert.Equal(t, solver, updates["solved_by"])
	assert.Contains(t, updates, "solved_at")

	// Reopening keeps the record of who solved it last.
	updates = issueStatusUpdates("Open", solver)
	require.Equal(t, "Open", updates["status"])
	assert.NotContains(t, updates, "solved_by")
	assert.NotContains(t, updates, "solved_at")
}
