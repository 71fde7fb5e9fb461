package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mbrandeis/taskloom/internal/domain"
	"github.com/mbrandeis/taskloom/internal/service"
)

type projectCreateRequest struct {
	Name     string `json:"name" binding:"required"`
	PhotoURL string `json:"photoUrl" binding:"omitempty,url"`
}

type projectUpdateRequest struct {
	Name     *string `json:"name"`
	PhotoURL *string `json:"photoUrl" binding:"omitempty,url"`
}

func (api *API) createProject(c *gin.Context) {
	var req projectCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	p, err := api.Projects.Create(c.Request.Context(), subjectID(c), service.ProjectCreate{
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, p)
}

func (api *API) listProjects(c *gin.Context) {
	list, err := api.Projects.ListForUser(c.Request.Context(), subjectID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, list)
}

func (api *API) getProject(c *gin.Context) {
	p, err := api.Projects.Get(c.Request.Context(), subjectID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, p)
}

func (api *API) updateProject(c *gin.Context) {
	var req projectUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	patch := domain.ProjectPatch{Name: req.Name, PhotoURL: req.PhotoURL}
	p, err := api.Projects.Update(c.Request.Context(), subjectID(c), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, p)
}

func (api *API) deleteProject(c *gin.Context) {
	if err := api.Projects.Delete(c.Request.Context(), subjectID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}

func (api *API) leaveProject(c *gin.Context) {
	if err := api.Projects.Leave(c.Request.Context(), subjectID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"left": c.Param("id")})
}
