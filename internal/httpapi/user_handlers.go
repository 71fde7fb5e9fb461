package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mbrandeis/taskloom/internal/domain"
)

type userUpdateRequest struct {
	Name          *string `json:"name"`
	PhotoURL      *string `json:"photoUrl" binding:"omitempty,url"`
	PhoneNumber   *string `json:"phoneNumber"`
	EmailVerified *bool   `json:"emailVerified"`
	CompanyName   *string `json:"companyName"`
	JobTitle      *string `json:"jobTitle"`
}

func (api *API) signUp(c *gin.Context) {
	u, err := api.Users.SignUp(c.Request.Context(), subjectID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, u)
}

func (api *API) getUser(c *gin.Context) {
	u, err := api.Users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, u)
}

func (api *API) updateUser(c *gin.Context) {
	var req userUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	patch := domain.UserPatch{
		Name:          req.Name,
		PhotoURL:      req.PhotoURL,
		PhoneNumber:   req.PhoneNumber,
		EmailVerified: req.EmailVerified,
		CompanyName:   req.CompanyName,
		JobTitle:      req.JobTitle,
	}
	u, err := api.Users.UpdateProfile(c.Request.Context(), subjectID(c), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, u)
}

func (api *API) deleteUser(c *gin.Context) {
	if err := api.Users.Delete(c.Request.Context(), subjectID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}
