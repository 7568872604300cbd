package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "user-directory-service/internal/domain/directory"
	usecase "user-directory-service/internal/usecase/directory"
	apperrors "user-directory-service/pkg/errors"
)

// DirectoryHandler handles HTTP requests for the admin user directory.
type DirectoryHandler struct {
	uc  usecase.Usecase
	log *zap.Logger
}

// NewDirectoryHandler creates a new DirectoryHandler instance.
func NewDirectoryHandler(uc usecase.Usecase, log *zap.Logger) *DirectoryHandler {
	return &DirectoryHandler{
		uc:  uc,
		log: log,
	}
}

// ListResponse is the success envelope of the listing endpoint.
type ListResponse struct {
	Data []domain.UserRecord `json:"data"`
	Meta domain.Meta         `json:"meta"`
}

// ErrorBody carries the error message inside the failure envelope.
type ErrorBody struct {
	Message string `json:"message"`
}

// ErrorResponse is the failure envelope, {error:{message}}.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ListUsers handles GET /admin/users-management/
//
// Query parameters: page, size, order_by (only -counter is served) and
// one optional parameter per filter field: first_name, user_id,
// username, phone_number, country, is_ban, is_registered.
func (h *DirectoryHandler) ListUsers(c *gin.Context) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}

	size, err := strconv.ParseInt(c.DefaultQuery("size", "20"), 10, 64)
	if err != nil || size < 1 {
		size = 20
	}

	if orderBy := c.DefaultQuery("order_by", "-counter"); orderBy != "-counter" {
		h.log.Warn("unsupported order_by", zap.String("order_by", orderBy))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorBody{Message: "order_by supports only -counter"},
		})
		return
	}

	req := usecase.ListUsersRequest{
		Page: page,
		Size: size,
		Criteria: domain.FilterCriteria{
			Name:         c.Query("first_name"),
			UserID:       c.Query("user_id"),
			Username:     c.Query("username"),
			PhoneNumber:  c.Query("phone_number"),
			Country:      c.Query("country"),
			IsBanned:     c.Query("is_ban"),
			IsRegistered: c.Query("is_registered"),
		},
	}

	resp, err := h.uc.ListUsers(c.Request.Context(), req)
	if err != nil {
		h.log.Error("ListUsers failed", zap.Error(err))
		h.handleError(c, err)
		return
	}

	if resp.Users == nil {
		resp.Users = []domain.UserRecord{}
	}
	c.JSON(http.StatusOK, ListResponse{Data: resp.Users, Meta: resp.Meta})
}

// GetUser handles GET /admin/users-management/:user_id
func (h *DirectoryHandler) GetUser(c *gin.Context) {
	userID := c.Param("user_id")

	u, err := h.uc.GetUser(c.Request.Context(), usecase.GetUserRequest{UserID: userID})
	if err != nil {
		h.log.Warn("GetUser failed", zap.String("user_id", userID), zap.Error(err))
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, u)
}

// Snapshot handles POST /users
//
// Legacy full-roster dump for clients that filter and paginate
// locally: a bare array, no envelope, no pagination.
func (h *DirectoryHandler) Snapshot(c *gin.Context) {
	resp, err := h.uc.Snapshot(c.Request.Context())
	if err != nil {
		h.log.Error("Snapshot failed", zap.Error(err))
		h.handleError(c, err)
		return
	}

	users := resp.Users
	if users == nil {
		users = []domain.UserRecord{}
	}
	c.JSON(http.StatusOK, users)
}

// handleError maps usecase errors onto the failure envelope.
func (h *DirectoryHandler) handleError(c *gin.Context, err error) {
	var statuser apperrors.HTTPStatuser
	if errors.As(err, &statuser) {
		c.JSON(statuser.HTTPStatus(), ErrorResponse{Error: ErrorBody{Message: err.Error()}})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: ErrorBody{Message: "an internal error occurred"},
	})
}
