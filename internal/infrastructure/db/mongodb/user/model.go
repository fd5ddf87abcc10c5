package user

import "time"

type (
	User struct {
		ID           string    `bson:"_id"`
		Name         string    `bson:"name"`
		Email        string    `bson:"email"`
		Phone        string    `bson:"phone"`
		PasswordHash string    `bson:"password_hash"`
		Role         string    `bson:"role"`
		ProductRefs  []string  `bson:"product_refs"`
		CreatedAt    time.Time `bson:"created_at"`
		UpdatedAt    time.Time `bson:"updated_at"`
	}
	Users []*User
)
