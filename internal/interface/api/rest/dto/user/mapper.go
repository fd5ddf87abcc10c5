package user

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"user-record-manager/internal/domain/user"
)

func ToResponseUser(uDomain user.User) User {
	refs := make([]uuid.UUID, len(uDomain.ProductRefs))
	copy(refs, uDomain.ProductRefs)

	var u = User{
		ID:          uDomain.ID,
		Name:        uDomain.Name,
		Email:       uDomain.Email,
		Phone:       uDomain.Phone,
		Role:        uDomain.Role.String(),
		ProductRefs: refs,
		CreatedAt:   uDomain.CreatedAt,
		UpdatedAt:   uDomain.UpdatedAt,
	}

	return u
}

func ToResponseUsers(usDomain user.Users) Users {
	us := make(Users, len(usDomain))
	for idx, u := range usDomain {
		us[idx] = ToResponseUser(*u)
	}

	return us
}

func ToDomainPatch(req UpdateRequest) user.Patch {
	var p user.Patch
	if req.Name != nil {
		name := norm.NFC.String(strings.TrimSpace(*req.Name))
		p.Name = &name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		p.Email = &email
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		p.Phone = &phone
	}
	if req.Role != nil {
		role := user.Role(strings.TrimSpace(*req.Role))
		p.Role = &role
	}

	return p
}
