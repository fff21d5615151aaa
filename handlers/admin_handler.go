package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tahseel-app/tahseel-backend/types"
)

// AdminHandler exposes the system-administration surface. Authorization is
// enforced inside the admin service, not here.
type AdminHandler struct {
	adminService AdminServiceInterface
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService AdminServiceInterface) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListUsers handles GET /v1/admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers(c.Request.Context(), getUserIDFromContext(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	if users == nil {
		users = []types.User{}
	}
	c.JSON(http.StatusOK, users)
}

// ListProjects handles GET /v1/admin/projects.
func (h *AdminHandler) ListProjects(c *gin.Context) {
	projects, err := h.adminService.ListProjects(c.Request.Context(), getUserIDFromContext(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	if projects == nil {
		projects = []types.AdminProject{}
	}
	c.JSON(http.StatusOK, projects)
}

// Stats handles GET /v1/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context(), getUserIDFromContext(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Promote handles POST /v1/admin/users/:id/promote.
func (h *AdminHandler) Promote(c *gin.Context) {
	err := h.adminService.SetSystemAdmin(c.Request.Context(), getUserIDFromContext(c), c.Param("id"), true)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User promoted to system administrator"})
}

// Demote handles POST /v1/admin/users/:id/demote.
func (h *AdminHandler) Demote(c *gin.Context) {
	err := h.adminService.SetSystemAdmin(c.Request.Context(), getUserIDFromContext(c), c.Param("id"), false)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "System administrator access revoked"})
}
