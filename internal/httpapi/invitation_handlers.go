package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mbrandeis/taskloom/internal/domain"
	"github.com/mbrandeis/taskloom/internal/service"
)

type invitationCreateRequest struct {
	ProjectID string `json:"projectId" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Role      string `json:"role" binding:"required,role"`
}

func (api *API) createInvitation(c *gin.Context) {
	var req invitationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	inv, err := api.Invitations.Create(c.Request.Context(), subjectID(c), service.InvitationCreate{
		ProjectID: req.ProjectID,
		Email:     req.Email,
		Role:      domain.Role(req.Role),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, inv)
}

func (api *API) listInvitations(c *gin.Context) {
	list, err := api.Invitations.ListForSubject(c.Request.Context(), subjectID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, list)
}

func (api *API) acceptInvitation(c *gin.Context) {
	if err := api.Invitations.Accept(c.Request.Context(), subjectID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"accepted": c.Param("id")})
}

func (api *API) declineInvitation(c *gin.Context) {
	if err := api.Invitations.Decline(c.Request.Context(), subjectID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"declined": c.Param("id")})
}

func (api *API) deleteInvitation(c *gin.Context) {
	if err := api.Invitations.Delete(c.Request.Context(), subjectID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}
