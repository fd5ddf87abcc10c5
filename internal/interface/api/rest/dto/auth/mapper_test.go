package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"user-record-manager/internal/domain/user"
)

func TestToDomainUser(t *testing.T) {
	// "Ana" with a combining acute accent on the final a
	decomposed := "Ana\u0301"

	u := ToDomainUser(RegisterRequest{
		Name:     "  " + decomposed + " ",
		Email:    " Ana@X.com ",
		Phone:    " 555 ",
		Password: " secret123 ",
	})

	assert.Equal(t, "An\u00e1", u.Name)
	assert.Equal(t, "ana@x.com", u.Email)
	assert.Equal(t, "555", u.Phone)
	assert.Equal(t, " secret123 ", u.Password, "password must be kept verbatim")
	assert.Equal(t, user.Role(""), u.Role)
	assert.Empty(t, u.PasswordHash)
}
