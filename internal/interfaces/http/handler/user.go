package handler

import (
	"github.com/dracarys/library/internal/application/identity"
	"github.com/dracarys/library/internal/application/report"
	"github.com/gin-gonic/gin"
)

// UserHandler serves registration, login and user administration
type UserHandler struct {
	BaseHandler
	userService  *identity.UserService
	statsService *report.StatsService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identity.UserService, statsService *report.StatsService) *UserHandler {
	return &UserHandler{userService: userService, statsService: statsService}
}

// Create handles POST /users/create
func (h *UserHandler) Create(c *gin.Context) {
	var req identity.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, user)
}

// Login handles POST /users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req identity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, resp)
}

// List handles GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, users)
}

// ListWithBorrowCount handles GET /users_with_borrow_count, the admin
// users table rows
func (h *UserHandler) ListWithBorrowCount(c *gin.Context) {
	users, err := h.userService.ListWithBorrowCount(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, users)
}

// Count handles GET /users/count
func (h *UserHandler) Count(c *gin.Context) {
	total, err := h.statsService.TotalMembers(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, gin.H{"total_members": total})
}

// GetByID handles GET /users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, user)
}

// Update handles PUT /users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req identity.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, user)
}

// Delete handles DELETE /users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
