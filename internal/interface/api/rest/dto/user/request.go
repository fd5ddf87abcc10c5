package user

type (
	// UpdateRequest: omitted fields keep their stored value.
	UpdateRequest struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
		Phone *string `json:"phone"`
		Role  *string `json:"role"`
	}
	PasswordRequest struct {
		Password string `json:"password"`
	}
)
