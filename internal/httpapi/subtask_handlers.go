package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mbrandeis/taskloom/internal/domain"
	"github.com/mbrandeis/taskloom/internal/service"
)

type subtaskCreateRequest struct {
	MilestoneID string `json:"milestoneId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"omitempty,subtaskstatus"`
	AssigneeUID string `json:"assigneeUid"`
}

type subtaskUpdateRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	Status        *string `json:"status" binding:"omitempty,subtaskstatus"`
	AssigneeUID   *string `json:"assigneeUid"`
	ClearAssignee bool    `json:"clearAssignee"`
}

func (api *API) createSubtask(c *gin.Context) {
	var req subtaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	s, err := api.Subtasks.Create(c.Request.Context(), subjectID(c), service.SubtaskCreate{
		MilestoneID: req.MilestoneID,
		Name:        req.Name,
		Description: req.Description,
		Status:      domain.SubtaskStatus(req.Status),
		AssigneeUID: req.AssigneeUID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, s)
}

func (api *API) getSubtask(c *gin.Context) {
	s, err := api.Subtasks.Get(c.Request.Context(), subjectID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, s)
}

func (api *API) listSubtasks(c *gin.Context) {
	list, err := api.Subtasks.ListByMilestone(c.Request.Context(), subjectID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, list)
}

func (api *API) updateSubtask(c *gin.Context) {
	var req subtaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	upd := service.SubtaskUpdate{
		Name:          req.Name,
		Description:   req.Description,
		AssigneeUID:   req.AssigneeUID,
		ClearAssignee: req.ClearAssignee,
	}
	if req.Status != nil {
		status := domain.SubtaskStatus(*req.Status)
		upd.Status = &status
	}
	s, err := api.Subtasks.Update(c.Request.Context(), subjectID(c), c.Param("id"), upd)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, s)
}

func (api *API) deleteSubtask(c *gin.Context) {
	if err := api.Subtasks.Delete(c.Request.Context(), subjectID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}
