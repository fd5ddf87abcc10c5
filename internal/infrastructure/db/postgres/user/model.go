package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	User struct {
		ID           uuid.UUID
		Name         string
		Email        string
		Phone        string
		PasswordHash string
		Role         string
		ProductRefs  []string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User
)
