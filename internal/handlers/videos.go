package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vlockster/vlockster/internal/services"
	"github.com/vlockster/vlockster/pkg/response"
)

// VideoHandler exposes the video catalogue endpoints.
type VideoHandler struct {
	videos *services.VideoService
}

// NewVideoHandler configures a video handler.
func NewVideoHandler(videos *services.VideoService) *VideoHandler {
	return &VideoHandler{videos: videos}
}

// Top returns the most-viewed public videos. Failures surface as an empty
// list, matching the service contract for top-N listings.
func (h *VideoHandler) Top(c *gin.Context) {
	limit, _ := pageParams(c)
	response.Success(c, http.StatusOK, h.videos.Top(requestContext(c), limit))
}
