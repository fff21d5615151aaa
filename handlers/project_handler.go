package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tahseel-app/tahseel-backend/types"
)

// ProjectHandler exposes project CRUD and member management.
type ProjectHandler struct {
	projectService ProjectServiceInterface
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService ProjectServiceInterface) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// Create handles POST /v1/projects.
func (h *ProjectHandler) Create(c *gin.Context) {
	var req types.CreateProjectRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), getUserIDFromContext(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// List handles GET /v1/projects.
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectService.ListForUser(c.Request.Context(), getUserIDFromContext(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	if projects == nil {
		projects = []types.ProjectWithRole{}
	}
	c.JSON(http.StatusOK, projects)
}

// Get handles GET /v1/projects/:id.
func (h *ProjectHandler) Get(c *gin.Context) {
	project, role, err := h.projectService.Get(c.Request.Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project, "role": role})
}

// Update handles PATCH /v1/projects/:id.
func (h *ProjectHandler) Update(c *gin.Context) {
	var update types.ProjectUpdate
	if !bindJSONOrError(c, &update) {
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), getUserIDFromContext(c), c.Param("id"), &update)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// Delete handles DELETE /v1/projects/:id.
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.projectService.Delete(c.Request.Context(), getUserIDFromContext(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListMembers handles GET /v1/projects/:id/members.
func (h *ProjectHandler) ListMembers(c *gin.Context) {
	members, err := h.projectService.ListMembers(c.Request.Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	if members == nil {
		members = []types.ProjectMemberDetail{}
	}
	c.JSON(http.StatusOK, members)
}

// AddMember handles POST /v1/projects/:id/members.
func (h *ProjectHandler) AddMember(c *gin.Context) {
	var req types.AddMemberRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	member, err := h.projectService.AddMember(c.Request.Context(), getUserIDFromContext(c), c.Param("id"), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

// UpdateMemberRole handles PATCH /v1/projects/:id/members/:memberId.
func (h *ProjectHandler) UpdateMemberRole(c *gin.Context) {
	var req types.UpdateMemberRoleRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	member, err := h.projectService.UpdateMemberRole(
		c.Request.Context(), getUserIDFromContext(c), c.Param("id"), c.Param("memberId"), req.Role)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// RemoveMember handles DELETE /v1/projects/:id/members/:memberId.
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	err := h.projectService.RemoveMember(
		c.Request.Context(), getUserIDFromContext(c), c.Param("id"), c.Param("memberId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
