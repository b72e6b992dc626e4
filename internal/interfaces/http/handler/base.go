package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopline/backend/internal/domain/shared"
	"github.com/shopline/backend/internal/interfaces/http/dto"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getShopperID extracts the authenticated shopper from the request.
// Authentication itself lives at the gateway; this service trusts the
// forwarded X-Shopper-ID header.
func getShopperID(c *gin.Context) (uuid.UUID, error) {
	raw := c.GetHeader("X-Shopper-ID")
	if raw == "" {
		return uuid.Nil, errors.New("shopper ID not found in request")
	}
	return uuid.Parse(raw)
}

// parsePagination reads page and page_size query parameters with defaults
func parsePagination(c *gin.Context) (int, int) {
	req := dto.DefaultListRequest()
	var query dto.ListRequest
	if err := c.ShouldBindQuery(&query); err == nil {
		if query.Page > 0 {
			req.Page = query.Page
		}
		if query.PageSize > 0 {
			req.PageSize = query.PageSize
		}
	}
	return req.Page, req.PageSize
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessPaged sends a success response with pagination totals
func (h *BaseHandler) SuccessPaged(c *gin.Context, items any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPagedData(items, total, page, pageSize)))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(code, message))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// HandleError maps an error to the appropriate HTTP response. Domain errors
// carry their own code; everything else is a 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, dto.GetHTTPStatus(domainErr.Code), domainErr.Code, domainErr.Message)
		return
	}
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An internal error occurred")
}
