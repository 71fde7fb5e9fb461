package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mbrandeis/taskloom/internal/domain"
	"github.com/mbrandeis/taskloom/internal/service"
)

type milestoneCreateRequest struct {
	ProjectID   string `json:"projectId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color" binding:"omitempty,hexcolor"`
	StartDate   int64  `json:"startDate" binding:"required"`
	EndDate     int64  `json:"endDate" binding:"required"`
}

type milestoneUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color" binding:"omitempty,hexcolor"`
	StartDate   *int64  `json:"startDate"`
	EndDate     *int64  `json:"endDate"`
}

func (api *API) createMilestone(c *gin.Context) {
	var req milestoneCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	m, err := api.Milestones.Create(c.Request.Context(), subjectID(c), service.MilestoneCreate{
		ProjectID:   req.ProjectID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, m)
}

func (api *API) getMilestone(c *gin.Context) {
	m, err := api.Milestones.Get(c.Request.Context(), subjectID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, m)
}

func (api *API) listMilestones(c *gin.Context) {
	list, err := api.Milestones.ListByProject(c.Request.Context(), subjectID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, list)
}

func (api *API) updateMilestone(c *gin.Context) {
	var req milestoneUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	patch := domain.MilestonePatch{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	m, err := api.Milestones.Update(c.Request.Context(), subjectID(c), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, m)
}

func (api *API) deleteMilestone(c *gin.Context) {
	if err := api.Milestones.Delete(c.Request.Context(), subjectID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}
