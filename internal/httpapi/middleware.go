package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mbrandeis/taskloom/internal/identity"
)

const (
	ctxSubjectKey = "sub"
	ctxEmailKey   = "email"
)

// BearerAuth verifies the Authorization header against the identity provider
// and stores the verified subject id and email on the request context.
func BearerAuth(idp identity.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || bearer == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := idp.Verify(c.Request.Context(), bearer)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(ctxSubjectKey, id.SubjectID)
		c.Set(ctxEmailKey, id.Email)
		c.Next()
	}
}

func subjectID(c *gin.Context) string {
	return c.GetString(ctxSubjectKey)
}
