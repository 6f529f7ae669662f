package api

import (
	"testing"

	"unimarket/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, isValidEmail("bea@example.com"))
	assert.False(t, isValidEmail("bea@example"))
	assert.False(t, isValidEmail("not-an-email"))
	assert.False(t, isValidEmail(""))
}

func TestIsValidPassword(t *testing.T) {
	assert.False(t, isValidPassword("short"))
	assert.True(t, isValidPassword("longenough"))
	// bcrypt truncates beyond 72 bytes, so longer inputs are rejected
	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	assert.False(t, isValidPassword(string(long)))
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, isValidRole(""))
	assert.True(t, isValidRole(domain.RoleBuyer))
	assert.True(t, isValidRole(domain.RoleSeller))
	// admin is not self-assignable at signup
	assert.False(t, isValidRole(domain.RoleAdmin))
	assert.False(t, isValidRole("superuser"))
}
