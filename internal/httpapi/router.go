// Package httpapi is the HTTP controller tier: a thin gin layer that binds
// request bodies, resolves the caller through the identity provider, and maps
// service errors to status codes.
package httpapi

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/mbrandeis/taskloom/internal/identity"
	"github.com/mbrandeis/taskloom/internal/service"
)

// API bundles the services the router exposes.
type API struct {
	Users       service.UserService
	Projects    service.ProjectService
	Milestones  service.MilestoneService
	Subtasks    service.SubtaskService
	Invitations service.InvitationService
	Identity    identity.Provider
	Log         *slog.Logger
}

// NewRouter builds the gin engine with all routes mounted under /api/v1.
func NewRouter(api *API) *gin.Engine {
	if api.Log == nil {
		api.Log = slog.Default()
	}
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	v1.POST("/auth/register", api.register)
	v1.POST("/auth/token", api.token)

	authed := v1.Group("")
	authed.Use(BearerAuth(api.Identity))

	authed.POST("/users", api.signUp)
	authed.GET("/users/:id", api.getUser)
	authed.PATCH("/users/:id", api.updateUser)
	authed.DELETE("/users/:id", api.deleteUser)

	authed.POST("/projects", api.createProject)
	authed.GET("/projects", api.listProjects)
	authed.GET("/projects/:id", api.getProject)
	authed.PATCH("/projects/:id", api.updateProject)
	authed.DELETE("/projects/:id", api.deleteProject)
	authed.POST("/projects/:id/leave", api.leaveProject)
	authed.GET("/projects/:id/milestones", api.listMilestones)

	authed.POST("/milestones", api.createMilestone)
	authed.GET("/milestones/:id", api.getMilestone)
	authed.PATCH("/milestones/:id", api.updateMilestone)
	authed.DELETE("/milestones/:id", api.deleteMilestone)
	authed.GET("/milestones/:id/subtasks", api.listSubtasks)

	authed.POST("/subtasks", api.createSubtask)
	authed.GET("/subtasks/:id", api.getSubtask)
	authed.PATCH("/subtasks/:id", api.updateSubtask)
	authed.DELETE("/subtasks/:id", api.deleteSubtask)

	authed.POST("/invitations", api.createInvitation)
	authed.GET("/invitations", api.listInvitations)
	authed.POST("/invitations/:id/accept", api.acceptInvitation)
	authed.POST("/invitations/:id/decline", api.declineInvitation)
	authed.DELETE("/invitations/:id", api.deleteInvitation)

	return r
}
