package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vlockster/vlockster/internal/cache"
	"github.com/vlockster/vlockster/internal/database/testutil"
	"github.com/vlockster/vlockster/internal/models"
	"github.com/vlockster/vlockster/pkg/response"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	r, err := NewRouter(db, cache.NewMemoryStore(), 5*time.Minute)
	require.NoError(t, err)
	return r, db
}

func doRequest(t *testing.T, r *gin.Engine, method, path string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)

	var payload response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return w, payload
}

func TestHealthRoute(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestProfileRoutes(t *testing.T) {
	r, db := newTestRouter(t)

	slug := "ava"
	profile := models.Profile{Name: "Ava", Email: "ava@vlockster.example", Role: "creator", Slug: &slug}
	require.NoError(t, db.Create(&profile).Error)

	w, payload := doRequest(t, r, http.MethodGet, "/api/profiles/"+profile.ID)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, payload.Success)

	w, payload = doRequest(t, r, http.MethodGet, "/api/profiles/slug/ava")
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, payload.Success)

	w, payload = doRequest(t, r, http.MethodGet, "/api/profiles/does-not-exist")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.False(t, payload.Success)
	require.Equal(t, "NOT_FOUND", payload.Error.Code)

	w, payload = doRequest(t, r, http.MethodGet, "/api/profiles?ids="+profile.ID+",missing")
	require.Equal(t, http.StatusOK, w.Code)
	list, ok := payload.Data.([]any)
	require.True(t, ok)
	require.Len(t, list, 1)
}

func TestCacheInvalidationRoutes(t *testing.T) {
	r, db := newTestRouter(t)

	profile := models.Profile{Name: "Ben", Email: "ben@vlockster.example", Role: "creator"}
	require.NoError(t, db.Create(&profile).Error)

	// Warm the cache, then delete the backing row. The cached copy keeps
	// serving until it is explicitly invalidated.
	w, _ := doRequest(t, r, http.MethodGet, "/api/profiles/"+profile.ID)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.Unscoped().Delete(&models.Profile{}, "id = ?", profile.ID).Error)

	w, _ = doRequest(t, r, http.MethodGet, "/api/profiles/"+profile.ID)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doRequest(t, r, http.MethodDelete, "/api/cache/profiles/"+profile.ID)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doRequest(t, r, http.MethodGet, "/api/profiles/"+profile.ID)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectRoutes(t *testing.T) {
	r, db := newTestRouter(t)

	creator := models.Profile{Name: "Cleo", Email: "cleo@vlockster.example", Role: "creator"}
	require.NoError(t, db.Create(&creator).Error)

	for _, p := range []models.Project{
		{CreatorID: creator.ID, Title: "Drama Doc", Category: "drama", Status: models.ProjectStatusActive, GoalAmount: 1000, CurrentAmount: 400, BackersCount: 12},
		{CreatorID: creator.ID, Title: "Sci-Fi Short", Category: "scifi", Status: models.ProjectStatusFunded, GoalAmount: 500, CurrentAmount: 700, BackersCount: 40},
	} {
		require.NoError(t, db.Create(&p).Error)
	}

	w, payload := doRequest(t, r, http.MethodGet, "/api/projects/category/drama?limit=5")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, payload.Meta)
	require.Equal(t, int64(1), payload.Meta.Total)

	w, payload = doRequest(t, r, http.MethodGet, "/api/projects/status/funded")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, int64(1), payload.Meta.Total)

	w, payload = doRequest(t, r, http.MethodGet, "/api/projects/creator/"+creator.ID)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, int64(2), payload.Meta.Total)

	w, payload = doRequest(t, r, http.MethodGet, "/api/projects/popular?limit=1")
	require.Equal(t, http.StatusOK, w.Code)
	list, ok := payload.Data.([]any)
	require.True(t, ok)
	require.Len(t, list, 1)

	w, _ = doRequest(t, r, http.MethodGet, "/api/projects/recent")
	require.Equal(t, http.StatusOK, w.Code)

	w, payload = doRequest(t, r, http.MethodGet, "/api/projects/creator/"+creator.ID+"/stats")
	require.Equal(t, http.StatusOK, w.Code)
	stats, ok := payload.Data.(map[string]any)
	require.True(t, ok)
	require.EqualValues(t, 2, stats["projects_count"])

	w, _ = doRequest(t, r, http.MethodGet, "/api/projects/category/drama/stats")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestListingFailureMapsToError(t *testing.T) {
	r, db := newTestRouter(t)
	require.NoError(t, db.Migrator().DropTable(&models.Project{}))

	w, payload := doRequest(t, r, http.MethodGet, "/api/projects/category/drama")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.False(t, payload.Success)

	// Top-N listings absorb failures into an empty list instead.
	w, payload = doRequest(t, r, http.MethodGet, "/api/projects/popular")
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, payload.Success)
}

func TestVideoAndReportRoutes(t *testing.T) {
	r, db := newTestRouter(t)

	for _, v := range []models.Video{
		{Title: "Popular Episode", Category: "drama", ViewCount: 5000, Visibility: models.VideoVisibilityPublic},
		{Title: "Members Cut", Category: "drama", ViewCount: 9000, Visibility: models.VideoVisibilityMembers},
	} {
		require.NoError(t, db.Create(&v).Error)
	}

	w, payload := doRequest(t, r, http.MethodGet, "/api/videos/top?limit=5")
	require.Equal(t, http.StatusOK, w.Code)
	list, ok := payload.Data.([]any)
	require.True(t, ok)
	require.Len(t, list, 1, "non-public videos stay out of top listings")

	w, payload = doRequest(t, r, http.MethodGet, "/api/reports/performance")
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, payload.Success)

	w, payload = doRequest(t, r, http.MethodGet, "/api/reports/content")
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, payload.Success)
}

func TestUnknownRoute(t *testing.T) {
	r, _ := newTestRouter(t)

	w, _ := doRequest(t, r, http.MethodGet, "/api/nope")
	require.Equal(t, http.StatusNotFound, w.Code)
}
