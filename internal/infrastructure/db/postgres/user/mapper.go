package user

import (
	"fmt"

	"github.com/google/uuid"

	domain "user-record-manager/internal/domain/user"
)

func fromDBModel(model *User) (*domain.User, error) {
	refs := make([]domain.UUID, 0, len(model.ProductRefs))
	for _, raw := range model.ProductRefs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("user %s: bad product ref %q: %w", model.ID, raw, err)
		}
		refs = append(refs, id)
	}

	var u = &domain.User{
		ID:           model.ID,
		Name:         model.Name,
		Email:        model.Email,
		Phone:        model.Phone,
		PasswordHash: model.PasswordHash,
		Role:         domain.Role(model.Role),
		ProductRefs:  refs,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	return u, nil
}

func fromDBModels(models Users) (domain.Users, error) {
	us := make(domain.Users, len(models))
	for idx, m := range models {
		u, err := fromDBModel(m)
		if err != nil {
			return nil, err
		}
		us[idx] = u
	}

	return us, nil
}

// toProductRefs never returns nil: pgx would encode a nil slice as NULL.
func toProductRefs(refs []domain.UUID) []string {
	out := make([]string, 0, len(refs))
	for _, id := range refs {
		out = append(out, id.String())
	}

	return out
}
