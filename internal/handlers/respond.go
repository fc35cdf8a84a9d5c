package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Diarra45/projet-Nan/internal/auth"
	"github.com/Diarra45/projet-Nan/internal/dto"
	"github.com/Diarra45/projet-Nan/internal/service"

	"github.com/gin-gonic/gin"
)

func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, dto.Envelope{Message: message, Data: data})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, dto.Envelope{Message: message})
}

func failErr(c *gin.Context, status int, message string, err error) {
	c.JSON(status, dto.Envelope{Message: message, Error: err.Error()})
}

// parseID reads a positive int64 path param; responds 400 and returns
// false on bad input.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// requester builds the service-level caller from the verified claims.
func requester(c *gin.Context) (service.Requester, bool) {
	claims := auth.ClaimsFromContext(c)
	if claims == nil {
		fail(c, http.StatusUnauthorized, "token required")
		return service.Requester{}, false
	}
	return service.Requester{ID: claims.UserID, Role: claims.Role}, true
}

// serviceError maps the service error taxonomy onto HTTP statuses.
// Anything unrecognized is logged and hidden behind a generic 500.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		fail(c, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrForbidden):
		fail(c, http.StatusForbidden, "access denied")
	case errors.Is(err, service.ErrAlreadyMember):
		fail(c, http.StatusBadRequest, "already a member")
	case errors.Is(err, service.ErrOwnerRemoval):
		fail(c, http.StatusBadRequest, "owner cannot be removed; delete the group instead")
	case errors.Is(err, service.ErrMemberNotFound):
		fail(c, http.StatusNotFound, "member not found in this group")
	case errors.Is(err, service.ErrInvalidStatus):
		fail(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("unhandled service error: %v", err)
		fail(c, http.StatusInternalServerError, "server error")
	}
}
