package auth

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"user-record-manager/internal/domain/user"
)

// ToDomainUser never sets a role: self-registered accounts get the default.
func ToDomainUser(req RegisterRequest) user.User {
	return user.User{
		Name:     norm.NFC.String(strings.TrimSpace(req.Name)),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:    strings.TrimSpace(req.Phone),
		Password: req.Password,
	}
}
