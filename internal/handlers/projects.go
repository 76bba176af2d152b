package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vlockster/vlockster/internal/services"
	appErrors "github.com/vlockster/vlockster/pkg/errors"
	"github.com/vlockster/vlockster/pkg/response"
)

// ProjectHandler exposes the project listing and aggregate endpoints.
type ProjectHandler struct {
	projects *services.ProjectService
}

// NewProjectHandler configures a project handler.
func NewProjectHandler(projects *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// ListByCategory returns a page of projects in a category.
func (h *ProjectHandler) ListByCategory(c *gin.Context) {
	limit, offset := pageParams(c)
	page := h.projects.ListByCategory(requestContext(c), c.Param("category"), limit, offset)
	writeProjectPage(c, page, limit, offset)
}

// ListByStatus returns a page of projects in a lifecycle status.
func (h *ProjectHandler) ListByStatus(c *gin.Context) {
	limit, offset := pageParams(c)
	page := h.projects.ListByStatus(requestContext(c), c.Param("status"), limit, offset)
	writeProjectPage(c, page, limit, offset)
}

// ListByCreator returns a page of projects owned by a creator.
func (h *ProjectHandler) ListByCreator(c *gin.Context) {
	limit, offset := pageParams(c)
	page := h.projects.ListByCreator(requestContext(c), c.Param("id"), limit, offset)
	writeProjectPage(c, page, limit, offset)
}

// Popular returns the most-backed projects.
func (h *ProjectHandler) Popular(c *gin.Context) {
	limit, _ := pageParams(c)
	response.Success(c, http.StatusOK, h.projects.Popular(requestContext(c), limit))
}

// Recent returns the most recently created projects.
func (h *ProjectHandler) Recent(c *gin.Context) {
	limit, _ := pageParams(c)
	response.Success(c, http.StatusOK, h.projects.Recent(requestContext(c), limit))
}

// CreatorStats returns aggregate funding figures for a creator.
func (h *ProjectHandler) CreatorStats(c *gin.Context) {
	stats := h.projects.CreatorStats(requestContext(c), c.Param("id"))
	if stats == nil {
		response.Error(c, appErrors.ErrUnavailable)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// CategoryStats returns aggregate funding figures for a category.
func (h *ProjectHandler) CategoryStats(c *gin.Context) {
	stats := h.projects.StatsByCategory(requestContext(c), c.Param("category"))
	if stats == nil {
		response.Error(c, appErrors.ErrUnavailable)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// writeProjectPage maps an absorbed listing failure (nil page) onto a 500
// envelope and a successful page onto data plus pagination metadata.
func writeProjectPage(c *gin.Context, page *services.ProjectPage, limit, offset int) {
	if page == nil {
		response.Error(c, appErrors.ErrUnavailable)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, page.Projects, &response.Meta{
		Limit:  limit,
		Offset: offset,
		Total:  page.Total,
	})
}
