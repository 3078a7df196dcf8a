//go:build unit

package user

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRole(t *testing.T) {
	for _, valid := range []string{"viewer", "operator", "admin"} {
		role, err := NewRole(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, role.String())
	}

	_, err := NewRole("superuser")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestNewUser(t *testing.T) {
	t.Run("normalizes the email and starts active", func(t *testing.T) {
		u, err := NewUser("  Desk@Flots-Blancs.example ", "hash", RoleOperator)
		require.NoError(t, err)
		assert.Equal(t, "desk@flots-blancs.example", u.Email())
		assert.Equal(t, RoleOperator, u.Role())
		assert.True(t, u.IsActive())
		assert.Nil(t, u.LastLogin())
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		_, err := NewUser("not-an-email", "hash", RoleViewer)
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})
}

func TestReconstructUser(t *testing.T) {
	id := uuid.New()
	lastLogin := time.Date(2024, 5, 30, 18, 0, 0, 0, time.UTC)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	u := ReconstructUser(id, "desk@flots-blancs.example", "hash", RoleAdmin, &lastLogin, false, created, created)
	assert.Equal(t, id, u.ID())
	assert.Equal(t, RoleAdmin, u.Role())
	assert.False(t, u.IsActive())
	require.NotNil(t, u.LastLogin())
	assert.Equal(t, lastLogin, *u.LastLogin())
}
