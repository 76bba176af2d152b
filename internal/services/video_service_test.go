package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vlockster/vlockster/internal/database/testutil"
	"github.com/vlockster/vlockster/internal/models"
)

func newVideoFixture(t *testing.T) (*VideoService, *gorm.DB) {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewVideoService(db)
	require.NoError(t, err)
	return svc, db
}

func createVideo(t *testing.T, db *gorm.DB, v models.Video) *models.Video {
	t.Helper()

	if v.Title == "" {
		v.Title = "Untitled"
	}
	if v.Visibility == "" {
		v.Visibility = models.VideoVisibilityPublic
	}
	require.NoError(t, db.Create(&v).Error)
	return &v
}

func TestTopVideosOrdersByViews(t *testing.T) {
	svc, db := newVideoFixture(t)
	ctx := context.Background()

	createVideo(t, db, models.Video{Title: "Quiet", ViewCount: 10})
	loud := createVideo(t, db, models.Video{Title: "Loud", ViewCount: 5000})

	top := svc.Top(ctx, 10)
	require.Len(t, top, 2)
	require.Equal(t, loud.ID, top[0].ID)
}

func TestTopVideosOnlyPublic(t *testing.T) {
	svc, db := newVideoFixture(t)
	ctx := context.Background()

	createVideo(t, db, models.Video{Title: "Members", ViewCount: 9000, Visibility: models.VideoVisibilityMembers})
	createVideo(t, db, models.Video{Title: "Backers", ViewCount: 8000, Visibility: models.VideoVisibilityBackers})
	pub := createVideo(t, db, models.Video{Title: "Public", ViewCount: 7})

	top := svc.Top(ctx, 10)
	require.Len(t, top, 1)
	require.Equal(t, pub.ID, top[0].ID)
}

func TestTopVideosEmptyCatalogue(t *testing.T) {
	svc, _ := newVideoFixture(t)

	top := svc.Top(context.Background(), 10)
	require.NotNil(t, top)
	require.Empty(t, top)
}

func TestCategoryCounts(t *testing.T) {
	svc, db := newVideoFixture(t)
	ctx := context.Background()

	createVideo(t, db, models.Video{Title: "A", Category: "drama"})
	createVideo(t, db, models.Video{Title: "B", Category: "drama"})
	createVideo(t, db, models.Video{Title: "C", Category: "comedy"})
	createVideo(t, db, models.Video{Title: "Hidden", Category: "drama", Visibility: models.VideoVisibilityMembers})

	counts, err := svc.categoryCounts(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, counts["drama"])
	require.EqualValues(t, 1, counts["comedy"])
}
