package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleIsValid(t *testing.T) {
	assert.True(t, RoleOwner.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleCollector.IsValid())
	assert.False(t, Role("manager").IsValid())
	assert.False(t, Role("").IsValid())
	assert.False(t, Role("Owner").IsValid())
}

func TestRoleSets(t *testing.T) {
	tests := []struct {
		name string
		role Role
		set  []Role
		want bool
	}{
		{"collector may read", RoleCollector, RolesAnyMember, true},
		{"collector may not manage", RoleCollector, RolesManage, false},
		{"admin may manage", RoleAdmin, RolesManage, true},
		{"admin may not delete project", RoleAdmin, RolesOwnerOnly, false},
		{"owner may delete project", RoleOwner, RolesOwnerOnly, true},
		{"unknown role is nowhere", Role("manager"), RolesAnyMember, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoleIn(tt.role, tt.set))
		})
	}
}

func TestRoleIsAssignable(t *testing.T) {
	assert.True(t, RoleAdmin.IsAssignable())
	assert.True(t, RoleCollector.IsAssignable())
	assert.False(t, RoleOwner.IsAssignable())
	assert.False(t, Role("manager").IsAssignable())
}
