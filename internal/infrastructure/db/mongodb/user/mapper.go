package user

import (
	"fmt"

	"github.com/google/uuid"

	domain "user-record-manager/internal/domain/user"
)

func fromDocument(doc *User) (*domain.User, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("bad user id %q: %w", doc.ID, err)
	}

	refs := make([]domain.UUID, 0, len(doc.ProductRefs))
	for _, raw := range doc.ProductRefs {
		ref, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("user %s: bad product ref %q: %w", doc.ID, raw, err)
		}
		refs = append(refs, ref)
	}

	return &domain.User{
		ID:           id,
		Name:         doc.Name,
		Email:        doc.Email,
		Phone:        doc.Phone,
		PasswordHash: doc.PasswordHash,
		Role:         domain.Role(doc.Role),
		ProductRefs:  refs,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}, nil
}

func fromDocuments(docs Users) (domain.Users, error) {
	us := make(domain.Users, len(docs))
	for idx, d := range docs {
		u, err := fromDocument(d)
		if err != nil {
			return nil, err
		}
		us[idx] = u
	}

	return us, nil
}

func toDocument(u domain.User) *User {
	refs := make([]string, 0, len(u.ProductRefs))
	for _, id := range u.ProductRefs {
		refs = append(refs, id.String())
	}

	return &User{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		Role:         u.Role.String(),
		ProductRefs:  refs,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
