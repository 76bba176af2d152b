package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vlockster/vlockster/internal/services"
	appErrors "github.com/vlockster/vlockster/pkg/errors"
	"github.com/vlockster/vlockster/pkg/response"
)

// ProfileHandler exposes read and cache-invalidation endpoints for profiles.
type ProfileHandler struct {
	profiles *services.ProfileService
}

// NewProfileHandler configures a profile handler.
func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Get returns a single profile by id. Pass cache=false to bypass the cache.
func (h *ProfileHandler) Get(c *gin.Context) {
	useCache := c.DefaultQuery("cache", "true") != "false"

	profile := h.profiles.GetByID(requestContext(c), c.Param("id"), useCache)
	if profile == nil {
		response.Error(c, appErrors.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// List returns the profiles matching a comma-separated ids query parameter.
// Unknown ids are skipped, so the result may be shorter than the input.
func (h *ProfileHandler) List(c *gin.Context) {
	ids := strings.Split(c.Query("ids"), ",")

	profiles := h.profiles.GetByIDs(requestContext(c), ids)
	response.Success(c, http.StatusOK, profiles)
}

// GetBySlug returns a single profile by its vanity slug.
func (h *ProfileHandler) GetBySlug(c *gin.Context) {
	profile := h.profiles.GetBySlug(requestContext(c), c.Param("slug"))
	if profile == nil {
		response.Error(c, appErrors.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// Invalidate evicts a single profile from the cache.
func (h *ProfileHandler) Invalidate(c *gin.Context) {
	h.profiles.Invalidate(requestContext(c), c.Param("id"))
	response.Success(c, http.StatusOK, gin.H{"invalidated": c.Param("id")})
}

// InvalidateAll clears the entire cache store.
func (h *ProfileHandler) InvalidateAll(c *gin.Context) {
	h.profiles.InvalidateAll(requestContext(c))
	response.Success(c, http.StatusOK, gin.H{"invalidated": "all"})
}
