package rest

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"user-record-manager/internal/application/ports"
	domain "user-record-manager/internal/domain/user"
	"user-record-manager/internal/infrastructure/jwt"
	"user-record-manager/internal/interface/api/rest/dto/user"
	"user-record-manager/internal/interface/api/rest/middleware"
	"user-record-manager/internal/interface/api/rest/validator"
)

type UserController struct {
	userService ports.UserService
	logger      *zap.Logger
}

func NewUserController(
	r *gin.Engine,
	userService ports.UserService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *UserController {
	uc := &UserController{
		userService: userService,
		logger:      logger,
	}

	owner := []gin.HandlerFunc{middleware.AuthMiddleware(jwtService), middleware.SelfOrAdmin("user_id")}

	r.GET(RouteUsers, middleware.AuthMiddleware(jwtService), middleware.AdminOnly(), uc.GetUsersHandler)
	r.GET(RouteUser, append(owner, uc.GetUserHandler)...)
	r.PUT(RouteUser, append(owner, uc.UpdateUserHandler)...)
	r.PUT(RouteUserPassword, append(owner, uc.ChangePasswordHandler)...)
	r.POST(RouteUserProduct, append(owner, uc.AttachProductHandler)...)
	r.DELETE(RouteUserProduct, append(owner, uc.DetachProductHandler)...)

	return uc
}

func (uc *UserController) GetUsersHandler(c *gin.Context) {
	page, err := validator.ValidatePage(c.Query("page"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}

	users, err := uc.userService.FindUsers(c.Request.Context(), page)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get users"},
		)
		uc.logger.Error("FindUsers() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, user.ResponseData{
		Data: user.ToResponseUsers(users),
	})
}

func (uc *UserController) GetUserHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a valid UUID"},
		)
		return
	}

	u, err := uc.userService.FindUserByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a user"},
		)
		uc.logger.Error("FindUserByID() error", zap.Error(err))
		return
	}

	if u == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"error": "user not found"},
		)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

func (uc *UserController) UpdateUserHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a valid UUID"},
		)
		return
	}

	var req user.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateUpdate(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}
	if req.Role != nil && c.GetString(middleware.CtxUserRole) != domain.RoleAdmin.String() {
		c.JSON(http.StatusForbidden, gin.H{"error": "only admins may change roles"})
		return
	}

	u, err := uc.userService.UpdateUser(c.Request.Context(), id, user.ToDomainPatch(req))
	if err != nil {
		writeWriteError(c, uc.logger, "UpdateUser()", err)
		return
	}

	if u == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"error": "user not found"},
		)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

func (uc *UserController) ChangePasswordHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a valid UUID"},
		)
		return
	}

	var req user.PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if errs := validator.ValidatePassword(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	u, err := uc.userService.ChangePassword(c.Request.Context(), id, req.Password)
	if err != nil {
		writeWriteError(c, uc.logger, "ChangePassword()", err)
		return
	}
	if u == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"error": "user not found"},
		)
		return
	}

	c.Status(http.StatusNoContent)
}

func (uc *UserController) AttachProductHandler(c *gin.Context) {
	uc.productRefHandler(c, uc.userService.AttachProduct, "AttachProduct()")
}

func (uc *UserController) DetachProductHandler(c *gin.Context) {
	uc.productRefHandler(c, uc.userService.DetachProduct, "DetachProduct()")
}

func (uc *UserController) productRefHandler(
	c *gin.Context,
	apply func(ctx context.Context, id, productID uuid.UUID) (*domain.User, error),
	op string,
) {
	ok, id := validator.IsUUID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a valid UUID"},
		)
		return
	}
	ok, productID := validator.IsUUID(c.Param("product_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "product_id must be a valid UUID"},
		)
		return
	}

	u, err := apply(c.Request.Context(), id, productID)
	if err != nil {
		writeWriteError(c, uc.logger, op, err)
		return
	}
	if u == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"error": "user not found"},
		)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}
