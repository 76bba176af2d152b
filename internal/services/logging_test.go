package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vlockster/vlockster/internal/models"
)

// The return value alone cannot distinguish "not found" from "store
// unreachable"; the logs must.
func TestNotFoundVersusStoreFailureLogging(t *testing.T) {
	svc, db, _ := newProfileFixture(t)

	core, logs := observer.New(zap.DebugLevel)
	svc.log = zap.New(core)

	ctx := context.Background()

	require.Nil(t, svc.GetByID(ctx, "missing-id", true))
	for _, entry := range logs.All() {
		require.Less(t, entry.Level, zap.ErrorLevel, "not-found must not log at error level")
	}

	logs.TakeAll()
	require.NoError(t, db.Migrator().DropTable(&models.Profile{}))

	require.Nil(t, svc.GetByID(ctx, "missing-id", true))

	var sawError bool
	for _, entry := range logs.All() {
		if entry.Level == zap.ErrorLevel {
			sawError = true
			fields := entry.ContextMap()
			require.NotEmpty(t, fields["error_id"], "store failures must carry a correlation id")
			require.Equal(t, "getProfileById", fields["endpoint"])
		}
	}
	require.True(t, sawError, "store failure must log at error level")
}

func TestBatchLookupFailureServesCachedSubset(t *testing.T) {
	svc, db, _ := newProfileFixture(t)
	ctx := context.Background()

	cached := createProfile(t, db, "Ava", "")
	uncachedID := "never-seen"
	require.NotNil(t, svc.GetByID(ctx, cached.ID, true))

	require.NoError(t, db.Migrator().DropTable(&models.Profile{}))

	result := svc.GetByIDs(ctx, []string{cached.ID, uncachedID})
	require.Len(t, result, 1)
	require.Equal(t, cached.ID, result[0].ID)
}
