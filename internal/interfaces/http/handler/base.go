package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dracarys/library/internal/domain/shared"
	"github.com/dracarys/library/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Detail is the error body: a single human-readable message under the
// detail key, the shape every client of this API expects
type Detail struct {
	Detail string `json:"detail"`
}

// BaseHandler provides shared response helpers. Success bodies go out raw:
// entities and lists are marshaled as-is, without an envelope.
type BaseHandler struct{}

// OK sends data with status 200
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created sends data with status 201
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// NoContent sends status 204 with an empty body
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Fail sends an error body with the given status
func (h *BaseHandler) Fail(c *gin.Context, status int, detail string) {
	c.JSON(status, Detail{Detail: detail})
}

// BindError reports a request binding failure as a 400 with a flattened
// validation message
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	h.Fail(c, http.StatusBadRequest, middleware.ValidationMessage(err))
}

// HandleDomainError maps a domain error to its HTTP status, carrying the
// domain message through verbatim. Unknown errors become an opaque 500.
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Fail(c, statusForCode(domainErr.Code), domainErr.Message)
		return
	}
	_ = c.Error(err)
	h.Fail(c, http.StatusInternalServerError, "Internal server error")
}

// pathID parses a numeric path parameter, answering 400 itself on bad
// input
func (h *BaseHandler) pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		h.Fail(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func statusForCode(code string) int {
	switch code {
	case shared.CodeNotFound:
		return http.StatusNotFound
	case shared.CodeInvalidInput, shared.CodeInvalidState:
		return http.StatusBadRequest
	case shared.CodeAlreadyExists:
		return http.StatusConflict
	case shared.CodeUnauthorized:
		return http.StatusUnauthorized
	case shared.CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
