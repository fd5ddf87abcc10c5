package validator

import (
	"errors"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"user-record-manager/internal/domain/user"
	"user-record-manager/internal/interface/api/rest/dto/auth"
	dto "user-record-manager/internal/interface/api/rest/dto/user"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt safe
)

var (
	phoneRe = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{2,19}$`)
)

func ValidatePage(page string) (int, error) {
	if page == "" {
		return 1, nil
	}

	p, err := strconv.Atoi(page)
	if err != nil || p < 1 {
		return 0, errors.New("invalid page")
	}

	return p, nil
}

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

func ValidateRegister(r auth.RegisterRequest) map[string]string {
	errs := make(map[string]string)

	validateEmail(errs, r.Email)
	validateName(errs, r.Name)
	validatePhone(errs, r.Phone)
	validatePassword(errs, r.Password)

	if len(errs) == 0 {
		return nil
	}

	return errs
}

func ValidateUpdate(r dto.UpdateRequest) map[string]string {
	errs := make(map[string]string)

	if r.Name == nil && r.Email == nil && r.Phone == nil && r.Role == nil {
		errs["body"] = "at least one field is required"
	}
	if r.Email != nil {
		validateEmail(errs, *r.Email)
	}
	if r.Name != nil {
		validateName(errs, *r.Name)
	}
	if r.Phone != nil {
		validatePhone(errs, *r.Phone)
	}
	if r.Role != nil && !user.Role(strings.TrimSpace(*r.Role)).Valid() {
		errs["role"] = "role must be one of: admin, customer"
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

func ValidatePassword(r dto.PasswordRequest) map[string]string {
	errs := make(map[string]string)

	validatePassword(errs, r.Password)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateLogin(r auth.LoginRequest) map[string]string {
	errs := make(map[string]string)

	validateEmail(errs, r.Email)

	// the password is not trimmed, only checked for presence
	if strings.TrimSpace(r.Password) == "" {
		errs["password"] = "password is required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateEmail(errs map[string]string, raw string) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		errs["email"] = "email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "invalid email format"
	}
}

func validateName(errs map[string]string, raw string) {
	name := strings.TrimSpace(raw)
	if name == "" {
		errs["name"] = "name is required"
	} else if l := utf8.RuneCountInString(name); l < 2 || l > 64 {
		errs["name"] = "name length must be 2–64 characters"
	} else if !isHumanName(name) {
		errs["name"] = "allowed characters: letters, space, '-', '''"
	}
}

func validatePhone(errs map[string]string, raw string) {
	phone := strings.TrimSpace(raw)
	if phone == "" {
		errs["phone"] = "phone is required"
	} else if !phoneRe.MatchString(phone) {
		errs["phone"] = "phone must contain 3–20 digits, spaces, '-', '(', ')'"
	}
}

func validatePassword(errs map[string]string, password string) {
	if strings.TrimSpace(password) == "" {
		errs["password"] = "password is required"
	} else if l := len(password); l < minPasswordLen || l > maxPasswordLen {
		errs["password"] = "password length must be 8–72 bytes"
	}
}

func isHumanName(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.Is(unicode.Mn, r) || r == ' ' || r == '-' || r == '\'' {
			continue
		}
		return false
	}
	return true
}
