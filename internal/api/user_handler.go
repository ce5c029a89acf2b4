package api

import (
	"alcyxob/gym-system/internal/domain"
	"alcyxob/gym-system/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	authService service.AuthService
	userService service.UserService
}

func NewUserHandler(authService service.AuthService, userService service.UserService) *UserHandler {
	return &UserHandler{authService: authService, userService: userService}
}

type CreateUserRequest struct {
	RegisterRequest
	Role domain.Role `json:"role" binding:"required,oneof=USER EMPLOYEE MANAGER ADMIN TRAINER"`
}

// UpdateUserRequest only touches the fields that are present.
type UpdateUserRequest struct {
	Name     *string      `json:"name" binding:"omitempty,min=1"`
	Surname  *string      `json:"surname" binding:"omitempty,min=1"`
	Email    *string      `json:"email" binding:"omitempty,email"`
	Phone    *string      `json:"phone" binding:"omitempty,e164"`
	Password *string      `json:"password" binding:"omitempty,min=8"`
	Role     *domain.Role `json:"role"`
}

func (h *UserHandler) Me(c *gin.Context) {
	p := caller(c)
	user, err := h.userService.GetByID(c.Request.Context(), p, p.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "user.found", "user", user)
}

// List returns all users, or only those with ?role=.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context(), domain.Role(c.Query("role")))
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "user.list", "users", users)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.userService.GetByID(c.Request.Context(), caller(c), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "user.found", "user", user)
}

// Create lets an admin add staff accounts of any role.
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Surname:  req.Surname,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, "user.created", "user", user)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userService.Update(c.Request.Context(), caller(c), id, service.UpdateUserInput{
		Name:     req.Name,
		Surname:  req.Surname,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "user.updated", "user", user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "user.deleted", "", nil)
}
