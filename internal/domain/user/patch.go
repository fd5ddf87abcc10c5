package user

// Patch carries the fields a caller wants to change; nil means untouched.
type Patch struct {
	Name     *string
	Email    *string
	Phone    *string
	Password *string
	Role     *Role
}

// Apply copies the set fields onto u and reports whether the password is
// part of this write.
func (p Patch) Apply(u *User) (passwordChanged bool) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Password != nil {
		u.Password = *p.Password
		passwordChanged = true
	}

	return passwordChanged
}

func (p Patch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil && p.Password == nil && p.Role == nil
}
