package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/arkadata/userhub/internal/domain/entity"
	"github.com/arkadata/userhub/pkg/response"
	"github.com/arkadata/userhub/pkg/validation"
)

// UserService is the slice of the application service the HTTP layer needs.
type UserService interface {
	CreateUser(ctx context.Context, email, name string, age *int) (*entity.User, error)
	GetUser(ctx context.Context, userID string) (*entity.User, error)
	PatchUser(ctx context.Context, userID string, upd entity.UserUpdate) (*entity.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]entity.User, int, error)
	DeleteUser(ctx context.Context, userID string) error
}

type UserHandler struct {
	Svc    UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required,min=1,max=255"`
	Age   *int   `json:"age" binding:"omitempty,gte=0,lte=125"`
}

// patchUserRequest carries tri-state fields, so the usual binding tags do
// not apply; validate() checks the provided fields instead.
type patchUserRequest struct {
	Email entity.Field[string] `json:"email"`
	Name  entity.Field[string] `json:"name"`
	Age   entity.Field[int]    `json:"age"`
}

// validate returns field-level problems. A patch with zero fields is a
// caller error here, before the domain service ever sees it.
func (r *patchUserRequest) validate() map[string]string {
	details := map[string]string{}

	if !r.Email.Present && !r.Name.Present && !r.Age.Present {
		details["payload"] = "at least one field must be provided"
		return details
	}

	if r.Email.Present {
		if r.Email.Null {
			details["email"] = "must not be null"
		} else if msg := validation.Var(r.Email.Value, "required,email"); msg != "" {
			details["email"] = msg
		}
	}
	if r.Name.Present {
		if r.Name.Null {
			details["name"] = "must not be null"
		} else if msg := validation.Var(r.Name.Value, "required,min=1,max=255"); msg != "" {
			details["name"] = msg
		}
	}
	if r.Age.Present && !r.Age.Null {
		if msg := validation.Var(r.Age.Value, "gte=0,lte=125"); msg != "" {
			details["age"] = msg
		}
	}

	if len(details) == 0 {
		return nil
	}
	return details
}

// listUsersQuery binds to pointers so an explicit zero is distinguishable
// from an absent parameter: absent falls back to the default, zero fails
// the range check.
type listUsersQuery struct {
	Page     *int `form:"page" binding:"omitempty,gte=1"`
	PageSize *int `form:"pageSize" binding:"omitempty,gte=1,lte=100"`
}

type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Age       *int   `json:"age"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Age:       u.Age,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: u.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// CreateUser handles POST /users.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	user, err := h.Svc.CreateUser(c.Request.Context(), req.Email, req.Name, req.Age)
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toUserResponse(user), "user created", nil)
}

// GetUser handles GET /users/:userId.
func (h *UserHandler) GetUser(c *gin.Context) {
	userID := c.Param("userId")
	user, err := h.Svc.GetUser(c.Request.Context(), userID)
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	if user == nil {
		response.Error[any](c, http.StatusNotFound, "User with identifier "+userID+" not found", nil)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(user), "user", nil)
}

// PatchUser handles PATCH /users/:userId.
func (h *UserHandler) PatchUser(c *gin.Context) {
	userID := c.Param("userId")

	var req patchUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if details := req.validate(); details != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", details)
		return
	}

	user, err := h.Svc.PatchUser(c.Request.Context(), userID, entity.UserUpdate{
		Email: req.Email,
		Name:  req.Name,
		Age:   req.Age,
	})
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(user), "user updated", nil)
}

// ListUsers handles GET /users.
func (h *UserHandler) ListUsers(c *gin.Context) {
	var query listUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}
	page, pageSize := 1, 20
	if query.Page != nil {
		page = *query.Page
	}
	if query.PageSize != nil {
		pageSize = *query.PageSize
	}

	limit, offset := pageToLimitOffset(page, pageSize)
	users, total, err := h.Svc.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}

	items := make([]userResponse, 0, len(users))
	for i := range users {
		items = append(items, toUserResponse(&users[i]))
	}
	response.Success(c, http.StatusOK, newPaginatedResponse(items, page, pageSize, total), "users", nil)
}

// DeleteUser handles DELETE /users/:userId.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID := c.Param("userId")
	if err := h.Svc.DeleteUser(c.Request.Context(), userID); err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
