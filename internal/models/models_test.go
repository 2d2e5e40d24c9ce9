package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole(t *testing.T) {
	assert.True(t, RoleStudent.IsStudent())
	assert.False(t, RoleStudent.IsStaff())
	assert.True(t, RoleCounsellor.IsStaff())
	assert.True(t, RoleAdmin.IsStaff())
	assert.False(t, Role("guest").IsStaff())
	assert.False(t, Role("guest").IsStudent())
}
