package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusevents_backend/internals/constants"
)

func TestAdminSeedToModel(t *testing.T) {
	u, err := AdminSeed{
		Username: "  admin ",
		Password: "change-me",
		FullName: "Administrator",
		Email:    "Admin@College.Local",
	}.toModel()
	require.NoError(t, err)

	assert.Equal(t, "admin", u.UserName)
	assert.Equal(t, "admin@college.local", u.Email)
	assert.Equal(t, constants.RoleAdmin, u.Role)
	assert.Nil(t, u.StudentID)
	assert.NotEqual(t, "change-me", u.Password)
	assert.True(t, u.CheckPassword("change-me"))
}
