package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mbrandeis/taskloom/internal/authz"
	"github.com/mbrandeis/taskloom/internal/domain"
	"github.com/mbrandeis/taskloom/internal/identity"
	"github.com/mbrandeis/taskloom/internal/repository"
	"github.com/mbrandeis/taskloom/internal/service"
)

// Responses carry either {"data": ...} or {"error": "..."}, nothing else.

func respondData(c *gin.Context, status int, v any) {
	c.JSON(status, gin.H{"data": v})
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	var memberExists service.MemberExistsError
	switch {
	case errors.Is(err, identity.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, authz.ErrUnauthorized),
		errors.Is(err, authz.ErrWrongAccount):
		return http.StatusForbidden
	case errors.Is(err, authz.ErrProjectNotFound),
		errors.Is(err, authz.ErrMilestoneNotFound),
		errors.Is(err, authz.ErrSubtaskNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrNoInvitation),
		errors.Is(err, service.ErrNoProject):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrAlreadyInvited):
		return http.StatusConflict
	case errors.Is(err, authz.ErrProjectIDMissing),
		errors.Is(err, repository.ErrEmptyPatch),
		errors.Is(err, domain.ErrMilestoneDates),
		errors.Is(err, service.ErrNotAMember),
		errors.Is(err, service.ErrNoIdentityAccount),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrAssigneeNotMember),
		errors.As(err, &memberExists):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
