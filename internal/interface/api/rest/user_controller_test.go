package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"user-record-manager/internal/application/ports"
	domain "user-record-manager/internal/domain/user"
	jwtSvc "user-record-manager/internal/infrastructure/jwt"
)

type FakeUserService struct {
	FindUserByIDFunc   func(ctx context.Context, id domain.UUID) (*domain.User, error)
	FindByEmailFunc    func(ctx context.Context, email string) (*domain.User, error)
	FindUsersFunc      func(ctx context.Context, page int) (domain.Users, error)
	RegisterFunc       func(ctx context.Context, u domain.User) (*domain.User, error)
	UpdateUserFunc     func(ctx context.Context, id domain.UUID, p domain.Patch) (*domain.User, error)
	ChangePasswordFunc func(ctx context.Context, id domain.UUID, password string) (*domain.User, error)
	AttachProductFunc  func(ctx context.Context, id, productID domain.UUID) (*domain.User, error)
	DetachProductFunc  func(ctx context.Context, id, productID domain.UUID) (*domain.User, error)
}

var errNotUsed = errors.New("not used")

func (f *FakeUserService) FindUserByID(ctx context.Context, id domain.UUID) (*domain.User, error) {
	if f.FindUserByIDFunc == nil {
		return nil, errNotUsed
	}
	return f.FindUserByIDFunc(ctx, id)
}
func (f *FakeUserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.FindByEmailFunc == nil {
		return nil, errNotUsed
	}
	return f.FindByEmailFunc(ctx, email)
}
func (f *FakeUserService) FindUsers(ctx context.Context, page int) (domain.Users, error) {
	if f.FindUsersFunc == nil {
		return nil, errNotUsed
	}
	return f.FindUsersFunc(ctx, page)
}
func (f *FakeUserService) Register(ctx context.Context, u domain.User) (*domain.User, error) {
	if f.RegisterFunc == nil {
		return nil, errNotUsed
	}
	return f.RegisterFunc(ctx, u)
}
func (f *FakeUserService) UpdateUser(ctx context.Context, id domain.UUID, p domain.Patch) (*domain.User, error) {
	if f.UpdateUserFunc == nil {
		return nil, errNotUsed
	}
	return f.UpdateUserFunc(ctx, id, p)
}
func (f *FakeUserService) ChangePassword(ctx context.Context, id domain.UUID, password string) (*domain.User, error) {
	if f.ChangePasswordFunc == nil {
		return nil, errNotUsed
	}
	return f.ChangePasswordFunc(ctx, id, password)
}
func (f *FakeUserService) AttachProduct(ctx context.Context, id, productID domain.UUID) (*domain.User, error) {
	if f.AttachProductFunc == nil {
		return nil, errNotUsed
	}
	return f.AttachProductFunc(ctx, id, productID)
}
func (f *FakeUserService) DetachProduct(ctx context.Context, id, productID domain.UUID) (*domain.User, error) {
	if f.DetachProductFunc == nil {
		return nil, errNotUsed
	}
	return f.DetachProductFunc(ctx, id, productID)
}

const testSecret = "test-secret"

func setupRouter(t *testing.T, us ports.UserService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	NewUserController(r, us, zap.NewNop(), jwtSvc.New(testSecret))

	return r
}

func doReq(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Reader
	switch v := body.(type) {
	case nil:
		buf = bytes.NewReader(nil)
	case string:
		buf = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func someDomainUser(id uuid.UUID) *domain.User {
	return &domain.User{
		ID:           id,
		Name:         "Ana",
		Email:        "ana@x.com",
		Phone:        "555",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         domain.RoleCustomer,
		CreatedAt:    time.Now().Add(-time.Hour),
		UpdatedAt:    time.Now(),
	}
}

// SignJWT builds a token the way a foreign issuer would, without the signer.
func SignJWT(secret, userID, role string, exp time.Duration) (string, error) {
	claims := jwtSvc.Claims{
		UserID: userID,
		Email:  "x@x.com",
		Role:   role,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(exp)),
		},
	}
	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func bearer(t *testing.T, userID, role string) map[string]string {
	t.Helper()
	tok, err := SignJWT(testSecret, userID, role, time.Hour)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + tok}
}

func TestUserController_GetUsersHandler(t *testing.T) {
	admin := uuid.New().String()

	tests := []struct {
		name       string
		pageQuery  string
		headers    map[string]string
		mockUS     func() ports.UserService
		wantStatus int
		wantErr    string
	}{
		{
			name:       "403 for customers",
			pageQuery:  "1",
			headers:    bearer(t, admin, "customer"),
			mockUS:     func() ports.UserService { return &FakeUserService{} },
			wantStatus: http.StatusForbidden,
			wantErr:    "forbidden",
		},
		{
			name:       "400 invalid page",
			pageQuery:  "zero",
			headers:    bearer(t, admin, "admin"),
			mockUS:     func() ports.UserService { return &FakeUserService{} },
			wantStatus: http.StatusBadRequest,
			wantErr:    "invalid page",
		},
		{
			name:      "500 when service fails",
			pageQuery: "1",
			headers:   bearer(t, admin, "admin"),
			mockUS: func() ports.UserService {
				return &FakeUserService{
					FindUsersFunc: func(ctx context.Context, page int) (domain.Users, error) {
						return nil, errors.New("db error")
					},
				}
			},
			wantStatus: http.StatusInternalServerError,
			wantErr:    "failed to get users",
		},
		{
			name:      "200 success",
			pageQuery: "2",
			headers:   bearer(t, admin, "admin"),
			mockUS: func() ports.UserService {
				return &FakeUserService{
					FindUsersFunc: func(ctx context.Context, page int) (domain.Users, error) {
						assert.Equal(t, 2, page)
						return domain.Users{someDomainUser(uuid.New())}, nil
					},
				}
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(t, tt.mockUS())
			rr := doReq(t, r, http.MethodGet, "/api/v1/users?page="+tt.pageQuery, nil, tt.headers)
			require.Equal(t, tt.wantStatus, rr.Code)

			if tt.wantErr != "" {
				var resp map[string]any
				_ = json.Unmarshal(rr.Body.Bytes(), &resp)
				assert.Equal(t, tt.wantErr, resp["error"])
			}
		})
	}
}

func TestUserController_GetUserHandler(t *testing.T) {
	okID := uuid.New()

	tests := []struct {
		name       string
		userID     string
		headers    map[string]string
		mockUS     func() ports.UserService
		wantStatus int
		wantErr    string
	}{
		{
			name:       "401 missing auth header",
			userID:     okID.String(),
			mockUS:     func() ports.UserService { return &FakeUserService{} },
			wantStatus: http.StatusUnauthorized,
			wantErr:    "missing Authorization header",
		},
		{
			name:       "401 invalid format",
			userID:     okID.String(),
			headers:    map[string]string{"Authorization": "Token something"},
			mockUS:     func() ports.UserService { return &FakeUserService{} },
			wantStatus: http.StatusUnauthorized,
			wantErr:    "invalid token format",
		},
		{
			name:   "401 invalid token signature",
			userID: okID.String(),
			headers: func() map[string]string {
				tok, _ := SignJWT("other-secret", okID.String(), "admin", time.Hour)
				return map[string]string{"Authorization": "Bearer " + tok}
			}(),
			mockUS:     func() ports.UserService { return &FakeUserService{} },
			wantStatus: http.StatusUnauthorized,
			wantErr:    "invalid token",
		},
		{
			name:       "403 someone else's record",
			userID:     okID.String(),
			headers:    bearer(t, uuid.New().String(), "customer"),
			mockUS:     func() ports.UserService { return &FakeUserService{} },
			wantStatus: http.StatusForbidden,
			wantErr:    "forbidden",
		},
		{
			name:       "400 invalid uuid",
			userID:     "not-a-uuid",
			headers:    bearer(t, okID.String(), "admin"),
			mockUS:     func() ports.UserService { return &FakeUserService{} },
			wantStatus: http.StatusBadRequest,
			wantErr:    "user_id must be a valid UUID",
		},
		{
			name:    "500 service error",
			userID:  okID.String(),
			headers: bearer(t, okID.String(), "customer"),
			mockUS: func() ports.UserService {
				return &FakeUserService{
					FindUserByIDFunc: func(ctx context.Context, id domain.UUID) (*domain.User, error) {
						return nil, errors.New("db error")
					},
				}
			},
			wantStatus: http.StatusInternalServerError,
			wantErr:    "failed to get a user",
		},
		{
			name:    "404 not found",
			userID:  okID.String(),
			headers: bearer(t, okID.String(), "customer"),
			mockUS: func() ports.UserService {
				return &FakeUserService{
					FindUserByIDFunc: func(ctx context.Context, id domain.UUID) (*domain.User, error) {
						return nil, nil
					},
				}
			},
			wantStatus: http.StatusNotFound,
			wantErr:    "user not found",
		},
		{
			name:    "200 success",
			userID:  okID.String(),
			headers: bearer(t, okID.String(), "customer"),
			mockUS: func() ports.UserService {
				return &FakeUserService{
					FindUserByIDFunc: func(ctx context.Context, id domain.UUID) (*domain.User, error) {
						return someDomainUser(okID), nil
					},
				}
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(t, tt.mockUS())
			rr := doReq(t, r, http.MethodGet, "/api/v1/users/"+tt.userID, nil, tt.headers)
			require.Equal(t, tt.wantStatus, rr.Code)

			var resp map[string]any
			_ = json.Unmarshal(rr.Body.Bytes(), &resp)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, resp["error"])
				return
			}
			assert.Equal(t, okID.String(), resp["id"])
			assert.NotContains(t, rr.Body.String(), "$2a$")
		})
	}
}

func TestUserController_UpdateUserHandler(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		headers    map[string]string
		body       any
		mockUS     func() ports.UserService
		wantStatus int
		wantErr    string
	}{
		{
			name:       "400 invalid JSON",
			headers:    bearer(t, id.String(), "customer"),
			body:       "{bad json",
			mockUS:     func() ports.UserService { return &FakeUserService{} },
			wantStatus: http.StatusBadRequest,
			wantErr:    "invalid request body",
		},
		{
			name:       "400 empty patch",
			headers:    bearer(t, id.String(), "customer"),
			body:       map[string]any{},
			mockUS:     func() ports.UserService { return &FakeUserService{} },
			wantStatus: http.StatusBadRequest,
			wantErr:    "invalid request body",
		},
		{
			name:       "403 customer promoting self",
			headers:    bearer(t, id.String(), "customer"),
			body:       map[string]any{"role": "admin"},
			mockUS:     func() ports.UserService { return &FakeUserService{} },
			wantStatus: http.StatusForbidden,
			wantErr:    "only admins may change roles",
		},
		{
			name:    "409 email already exists",
			headers: bearer(t, id.String(), "customer"),
			body:    map[string]any{"email": "taken@x.com"},
			mockUS: func() ports.UserService {
				return &FakeUserService{
					UpdateUserFunc: func(ctx context.Context, _ domain.UUID, p domain.Patch) (*domain.User, error) {
						return nil, domain.ErrEmailAlreadyExists
					},
				}
			},
			wantStatus: http.StatusConflict,
			wantErr:    "email already exists",
		},
		{
			name:    "404 not found",
			headers: bearer(t, id.String(), "customer"),
			body:    map[string]any{"name": "Ana Maria"},
			mockUS: func() ports.UserService {
				return &FakeUserService{
					UpdateUserFunc: func(ctx context.Context, _ domain.UUID, p domain.Patch) (*domain.User, error) {
						return nil, nil
					},
				}
			},
			wantStatus: http.StatusNotFound,
			wantErr:    "user not found",
		},
		{
			name:    "200 admin changes role",
			headers: bearer(t, uuid.New().String(), "admin"),
			body:    map[string]any{"role": "admin", "name": " Ana Maria "},
			mockUS: func() ports.UserService {
				return &FakeUserService{
					UpdateUserFunc: func(ctx context.Context, got domain.UUID, p domain.Patch) (*domain.User, error) {
						assert.Equal(t, id, got)
						require.NotNil(t, p.Role)
						require.NotNil(t, p.Name)
						assert.Nil(t, p.Password)
						assert.Equal(t, domain.RoleAdmin, *p.Role)
						assert.Equal(t, "Ana Maria", *p.Name)
						u := someDomainUser(id)
						u.Role = domain.RoleAdmin
						return u, nil
					},
				}
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(t, tt.mockUS())
			rr := doReq(t, r, http.MethodPut, "/api/v1/users/"+id.String(), tt.body, tt.headers)
			require.Equal(t, tt.wantStatus, rr.Code)

			if tt.wantErr != "" {
				var resp map[string]any
				_ = json.Unmarshal(rr.Body.Bytes(), &resp)
				assert.Equal(t, tt.wantErr, resp["error"])
			}
		})
	}
}

func TestUserController_ChangePasswordHandler(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		body       any
		mockUS     func() ports.UserService
		wantStatus int
	}{
		{
			name:       "400 too short",
			body:       map[string]any{"password": "short"},
			mockUS:     func() ports.UserService { return &FakeUserService{} },
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "500 hashing failure",
			body: map[string]any{"password": "n3w-secret"},
			mockUS: func() ports.UserService {
				return &FakeUserService{
					ChangePasswordFunc: func(ctx context.Context, _ domain.UUID, _ string) (*domain.User, error) {
						return nil, domain.ErrHashingFailure
					},
				}
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "204 success",
			body: map[string]any{"password": "n3w-secret"},
			mockUS: func() ports.UserService {
				return &FakeUserService{
					ChangePasswordFunc: func(ctx context.Context, got domain.UUID, password string) (*domain.User, error) {
						assert.Equal(t, id, got)
						assert.Equal(t, "n3w-secret", password)
						return someDomainUser(id), nil
					},
				}
			},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(t, tt.mockUS())
			rr := doReq(t, r, http.MethodPut, "/api/v1/users/"+id.String()+"/password", tt.body, bearer(t, id.String(), "customer"))
			require.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestUserController_ProductRefs(t *testing.T) {
	id := uuid.New()
	productID := uuid.New()

	var attached, detached bool
	us := &FakeUserService{
		AttachProductFunc: func(ctx context.Context, got, p domain.UUID) (*domain.User, error) {
			attached = true
			assert.Equal(t, productID, p)
			u := someDomainUser(got)
			u.ProductRefs = []domain.UUID{p}
			return u, nil
		},
		DetachProductFunc: func(ctx context.Context, got, p domain.UUID) (*domain.User, error) {
			detached = true
			return nil, nil
		},
	}
	r := setupRouter(t, us)
	path := "/api/v1/users/" + id.String() + "/products/"

	rr := doReq(t, r, http.MethodPost, path+"not-a-uuid", nil, bearer(t, id.String(), "customer"))
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doReq(t, r, http.MethodPost, path+productID.String(), nil, bearer(t, id.String(), "customer"))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, attached)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []any{productID.String()}, resp["products"])

	rr = doReq(t, r, http.MethodDelete, path+productID.String(), nil, bearer(t, id.String(), "customer"))
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.True(t, detached)
}
