package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"livepoll/internal/transport/httpdto"
	livepoll_errors "livepoll/pkg/errors"
)

// writeError translates core sentinel errors into HTTP status and code.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, livepoll_errors.ErrNotFound):
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse(err.Error(), "NOT_FOUND"))
	case errors.Is(err, livepoll_errors.ErrPollClosed):
		c.JSON(http.StatusConflict, httpdto.NewErrorResponse(err.Error(), "POLL_CLOSED"))
	case errors.Is(err, livepoll_errors.ErrInvalidOption):
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse(err.Error(), "INVALID_OPTION"))
	case errors.Is(err, livepoll_errors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse(err.Error(), "INVALID_INPUT"))
	case errors.Is(err, livepoll_errors.ErrCodeExhausted):
		c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error(), "CODE_EXHAUSTED"))
	case errors.Is(err, livepoll_errors.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, httpdto.NewErrorResponse(err.Error(), "RATE_LIMITED"))
	default:
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse(err.Error(), "INTERNAL_ERROR"))
	}
}
