package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mbrandeis/taskloom/internal/identity"
)

type registerRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
}

type tokenRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// register creates an identity account and issues its first token. The
// application-side user document is created separately, by POST /users.
func (api *API) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	existing, err := api.Identity.UserByEmail(ctx, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Account already exists"})
		return
	}

	acct := identity.Account{
		UID:   uuid.New().String(),
		Email: req.Email,
		Name:  req.Name,
	}
	if err := api.Identity.Register(ctx, acct); err != nil {
		respondError(c, err)
		return
	}
	token, err := api.Identity.CreateToken(ctx, acct.UID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, gin.H{"uid": acct.UID, "token": token})
}

func (api *API) token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	acct, err := api.Identity.UserByEmail(ctx, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	if acct == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	token, err := api.Identity.CreateToken(ctx, acct.UID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"uid": acct.UID, "token": token})
}
