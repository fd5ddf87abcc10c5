package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	User struct {
		ID          uuid.UUID   `json:"id"`
		Name        string      `json:"name"`
		Email       string      `json:"email"`
		Phone       string      `json:"phone"`
		Role        string      `json:"role"`
		ProductRefs []uuid.UUID `json:"products"`
		CreatedAt   time.Time   `json:"created_at"`
		UpdatedAt   time.Time   `json:"updated_at"`
	}
	Users        []User
	ResponseData struct {
		Data Users `json:"data"`
	}
)
