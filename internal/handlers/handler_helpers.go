package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/projuktisheba/stockledger-backend/internal/apperrors"
	"github.com/projuktisheba/stockledger-backend/internal/dto"
	"github.com/projuktisheba/stockledger-backend/internal/middleware"
)

// respondError maps a service error onto an HTTP status and writes the
// failure envelope. fallbackMsg replaces the raw error text for 500s so
// internals never leak to clients.
func respondError(c *gin.Context, err error, fallbackMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrAmbiguousAccount),
		errors.Is(err, apperrors.ErrExceedsDue),
		errors.Is(err, apperrors.ErrInsufficientStock),
		errors.Is(err, apperrors.ErrInsufficientBalance):
		logger.Warn("Request rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, dto.Fail(err.Error()))
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, dto.Fail(err.Error()))
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflicting state", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, dto.Fail(err.Error()))
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, dto.Fail(err.Error()))
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Fail(fallbackMsg))
	}
}

// bindJSON binds the request body, writing the 400 response itself on
// failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Warn("Failed to bind request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("invalid request format: "+err.Error()))
		return false
	}
	return true
}

// bindQuery binds query parameters, writing the 400 response itself on
// failure.
func bindQuery(c *gin.Context, params any) bool {
	if err := c.ShouldBindQuery(params); err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Warn("Failed to bind query params", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("invalid query parameters: "+err.Error()))
		return false
	}
	return true
}

// requireUserID extracts the authenticated user from the request context,
// writing the 401 response itself when absent.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.Fail("unauthorized"))
		return "", false
	}
	return userID, true
}
