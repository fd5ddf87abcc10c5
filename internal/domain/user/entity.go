package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type (
	UUID = uuid.UUID
	Role string

	User struct {
		ID    UUID
		Name  string
		Email string
		Phone string

		// Password is the plaintext submitted on this write. It only lives
		// until the pre-persist hook replaces it with PasswordHash.
		Password     string
		PasswordHash string

		Role        Role
		ProductRefs []UUID

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User
)

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCustomer
}

func (r Role) String() string { return string(r) }

func (u *User) ApplyDefaults() {
	if u.Role == "" {
		u.Role = RoleCustomer
	}
}

func (u *User) Validate() error {
	errs := make(map[string]string)

	if strings.TrimSpace(u.Name) == "" {
		errs["name"] = "name is required"
	}
	if strings.TrimSpace(u.Email) == "" {
		errs["email"] = "email is required"
	}
	if strings.TrimSpace(u.Phone) == "" {
		errs["phone"] = "phone is required"
	}
	if u.Password == "" && u.PasswordHash == "" {
		errs["password"] = "password is required"
	}
	if !u.Role.Valid() {
		errs["role"] = "role must be one of: admin, customer"
	}

	if len(errs) == 0 {
		return nil
	}

	return &ValidationError{Fields: errs}
}

// AddProductRef appends id unless it is already referenced.
func (u *User) AddProductRef(id UUID) bool {
	for _, ref := range u.ProductRefs {
		if ref == id {
			return false
		}
	}
	u.ProductRefs = append(u.ProductRefs, id)

	return true
}

func (u *User) RemoveProductRef(id UUID) bool {
	for idx, ref := range u.ProductRefs {
		if ref == id {
			u.ProductRefs = append(u.ProductRefs[:idx], u.ProductRefs[idx+1:]...)
			return true
		}
	}

	return false
}
