package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dmarakulin/learn-logbook/internal/adapter"
	"github.com/dmarakulin/learn-logbook/internal/cache"
	"github.com/dmarakulin/learn-logbook/internal/logger"
	"github.com/dmarakulin/learn-logbook/internal/mock"
	"github.com/dmarakulin/learn-logbook/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	testRecordsKey   = cache.RecordsKey(calendarEntity)
	testWatermarkKey = cache.LastSyncKey(calendarEntity)
)

// newTestSyncSvc builds a clientSyncService with gomock collaborators, a
// signed-in owner and a frozen clock.
func newTestSyncSvc(t *testing.T, ctrl *gomock.Controller, ownerID int64) (*clientSyncService, *mock.MockStore, *mock.MockServerAdapter) {
	t.Helper()

	mockStore := mock.NewMockStore(ctrl)
	mockAdapter := mock.NewMockServerAdapter(ctrl)

	identity := NewSessionIdentity()
	identity.SignIn(ownerID)

	svc := NewClientSyncService(mockStore, mockAdapter, identity, logger.Nop()).(*clientSyncService)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }

	return svc, mockStore, mockAdapter
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	payload, err := json.Marshal(v)
	require.NoError(t, err)
	return payload
}

func testEvent(id string, ownerID int64, title string) models.Event {
	start := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	return models.Event{
		ID:        id,
		OwnerID:   ownerID,
		Title:     title,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		UpdatedAt: start,
	}
}

// ── Sync ─────────────────────────────────────────────────────────────────────

func TestSync_FirstRunFetchesEverythingAndPersistsWatermark(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter := newTestSyncSvc(t, ctrl, 1)
	remote := testEvent("e1", 1, "calculus")

	// no watermark, no cached records yet
	mockStore.EXPECT().Load(testWatermarkKey).Return(nil, false)
	mockAdapter.EXPECT().EventsUpdatedSince(gomock.Any(), time.Time{}).Return([]models.Event{remote}, nil)
	mockStore.EXPECT().Load(testRecordsKey).Return(nil, false)

	mockStore.EXPECT().Save(testRecordsKey, mustJSON(t, []models.Event{remote})).Return(nil)
	mockStore.EXPECT().Save(testWatermarkKey, []byte("2026-03-10T09:00:00Z")).Return(nil)

	got, err := svc.Sync(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "e1", got[0].ID)
}

func TestSync_RemoteFailureServesCachedSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter := newTestSyncSvc(t, ctrl, 1)
	cached := []models.Event{testEvent("e1", 1, "calculus")}

	mockStore.EXPECT().Load(testWatermarkKey).Return([]byte("2026-03-01T00:00:00Z"), true)
	mockAdapter.EXPECT().EventsUpdatedSince(gomock.Any(), gomock.Any()).
		Return(nil, adapter.ErrRemote)
	mockStore.EXPECT().Load(testRecordsKey).Return(mustJSON(t, cached), true)
	// no Save expectations: neither records nor watermark may be written

	got, err := svc.Sync(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "calculus", got[0].Title)
}

func TestSync_MergeRemoteWinsWholeRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter := newTestSyncSvc(t, ctrl, 1)

	stale := testEvent("e1", 1, "old title")
	stale.Description = "local-only note"
	untouched := testEvent("e2", 1, "unchanged")
	fresh := testEvent("e1", 1, "new title") // no description: replacement is whole-record
	added := testEvent("e3", 1, "brand new")

	mockStore.EXPECT().Load(testWatermarkKey).Return([]byte("2026-03-01T00:00:00Z"), true)
	mockAdapter.EXPECT().EventsUpdatedSince(gomock.Any(), gomock.Any()).
		Return([]models.Event{fresh, added}, nil)
	mockStore.EXPECT().Load(testRecordsKey).Return(mustJSON(t, []models.Event{stale, untouched}), true)

	var persisted []models.Event
	mockStore.EXPECT().Save(testRecordsKey, gomock.Any()).
		DoAndReturn(func(_ string, payload []byte) error {
			return json.Unmarshal(payload, &persisted)
		})
	mockStore.EXPECT().Save(testWatermarkKey, gomock.Any()).Return(nil)

	got, err := svc.Sync(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, got, persisted)

	byID := map[string]models.Event{}
	for _, ev := range got {
		byID[ev.ID] = ev
	}
	assert.Equal(t, "new title", byID["e1"].Title)
	assert.Empty(t, byID["e1"].Description, "replacement must be whole-record, not field-wise")
	assert.Equal(t, "unchanged", byID["e2"].Title)
	assert.Equal(t, "brand new", byID["e3"].Title)
}

func TestSync_ForeignOwnerDeltasAreDropped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter := newTestSyncSvc(t, ctrl, 1)
	foreign := testEvent("x1", 99, "not mine")

	mockStore.EXPECT().Load(testWatermarkKey).Return(nil, false)
	mockAdapter.EXPECT().EventsUpdatedSince(gomock.Any(), gomock.Any()).
		Return([]models.Event{foreign}, nil)
	mockStore.EXPECT().Load(testRecordsKey).Return(nil, false)

	mockStore.EXPECT().Save(testRecordsKey, gomock.Any()).Return(nil)
	mockStore.EXPECT().Save(testWatermarkKey, gomock.Any()).Return(nil)

	got, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSync_CorruptCacheTreatedAsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter := newTestSyncSvc(t, ctrl, 1)
	remote := testEvent("e1", 1, "calculus")

	mockStore.EXPECT().Load(testWatermarkKey).Return(nil, false)
	mockAdapter.EXPECT().EventsUpdatedSince(gomock.Any(), gomock.Any()).
		Return([]models.Event{remote}, nil)
	mockStore.EXPECT().Load(testRecordsKey).Return([]byte("{{{not json"), true)

	mockStore.EXPECT().Save(testRecordsKey, mustJSON(t, []models.Event{remote})).Return(nil)
	mockStore.EXPECT().Save(testWatermarkKey, gomock.Any()).Return(nil)

	got, err := svc.Sync(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestSync_UnparsableWatermarkFallsBackToEpoch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter := newTestSyncSvc(t, ctrl, 1)

	mockStore.EXPECT().Load(testWatermarkKey).Return([]byte("yesterday-ish"), true)
	mockAdapter.EXPECT().EventsUpdatedSince(gomock.Any(), time.Time{}).Return(nil, nil)
	mockStore.EXPECT().Load(testRecordsKey).Return(nil, false)
	mockStore.EXPECT().Save(testRecordsKey, gomock.Any()).Return(nil)
	mockStore.EXPECT().Save(testWatermarkKey, gomock.Any()).Return(nil)

	_, err := svc.Sync(context.Background())
	require.NoError(t, err)
}

func TestSync_SnapshotSaveFailureSkipsWatermark(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter := newTestSyncSvc(t, ctrl, 1)
	remote := testEvent("e1", 1, "calculus")

	mockStore.EXPECT().Load(testWatermarkKey).Return(nil, false)
	mockAdapter.EXPECT().EventsUpdatedSince(gomock.Any(), gomock.Any()).
		Return([]models.Event{remote}, nil)
	mockStore.EXPECT().Load(testRecordsKey).Return(nil, false)

	mockStore.EXPECT().Save(testRecordsKey, gomock.Any()).Return(errors.New("disk full"))
	// watermark must not be written: the delta has to be re-delivered

	got, err := svc.Sync(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1, "merged result is still returned to the caller")
}

func TestSync_NotAuthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mock.NewMockStore(ctrl)
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	svc := NewClientSyncService(mockStore, mockAdapter, NewSessionIdentity(), logger.Nop())

	_, err := svc.Sync(context.Background())
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

// ── mutations ────────────────────────────────────────────────────────────────

func TestAddEvent_RemoteFirstThenCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter := newTestSyncSvc(t, ctrl, 1)

	draft := models.Event{Title: "physics lab"}
	canonical := testEvent("server-id", 1, "physics lab")

	mockAdapter.EXPECT().CreateEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ev models.Event) (models.Event, error) {
			assert.Equal(t, int64(1), ev.OwnerID, "owner is stamped before the remote call")
			return canonical, nil
		})
	mockStore.EXPECT().Load(testRecordsKey).Return(nil, false)
	mockStore.EXPECT().Save(testRecordsKey, mustJSON(t, []models.Event{canonical})).Return(nil)

	created, err := svc.AddEvent(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, "server-id", created.ID)
}

func TestAddEvent_RemoteFailureLeavesCacheUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockAdapter := newTestSyncSvc(t, ctrl, 1)

	remoteErr := errors.New("insert rejected")
	mockAdapter.EXPECT().CreateEvent(gomock.Any(), gomock.Any()).Return(models.Event{}, remoteErr)
	// no store expectations: the cache may not be read or written

	_, err := svc.AddEvent(context.Background(), models.Event{Title: "doomed"})
	require.ErrorIs(t, err, remoteErr)
}

func TestUpdateEvent_MirrorsOntoCachedCopy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter := newTestSyncSvc(t, ctrl, 1)

	cached := testEvent("e1", 1, "old title")
	newTitle := "new title"
	update := models.EventUpdate{Title: &newTitle}

	mockAdapter.EXPECT().UpdateEvent(gomock.Any(), "e1", update).Return(nil)
	mockStore.EXPECT().Load(testRecordsKey).Return(mustJSON(t, []models.Event{cached}), true)

	var persisted []models.Event
	mockStore.EXPECT().Save(testRecordsKey, gomock.Any()).
		DoAndReturn(func(_ string, payload []byte) error {
			return json.Unmarshal(payload, &persisted)
		})

	require.NoError(t, svc.UpdateEvent(context.Background(), "e1", update))
	require.Len(t, persisted, 1)
	assert.Equal(t, "new title", persisted[0].Title)
}

func TestUpdateEvent_LocallyAbsentIsCacheNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter := newTestSyncSvc(t, ctrl, 1)

	newTitle := "renamed elsewhere"
	update := models.EventUpdate{Title: &newTitle}

	mockAdapter.EXPECT().UpdateEvent(gomock.Any(), "never-synced", update).Return(nil)
	mockStore.EXPECT().Load(testRecordsKey).Return(nil, false)
	// no Save: nothing to mirror

	require.NoError(t, svc.UpdateEvent(context.Background(), "never-synced", update))
}

func TestUpdateEvent_RemoteFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockAdapter := newTestSyncSvc(t, ctrl, 1)

	newTitle := "x"
	update := models.EventUpdate{Title: &newTitle}
	mockAdapter.EXPECT().UpdateEvent(gomock.Any(), "e1", update).Return(adapter.ErrNotFound)

	err := svc.UpdateEvent(context.Background(), "e1", update)
	require.ErrorIs(t, err, adapter.ErrNotFound)
}

func TestRemoveEvent_FiltersCachedRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, mockAdapter := newTestSyncSvc(t, ctrl, 1)

	keep := testEvent("keep", 1, "stays")
	drop := testEvent("drop", 1, "goes")

	mockAdapter.EXPECT().DeleteEvent(gomock.Any(), "drop").Return(nil)
	mockStore.EXPECT().Load(testRecordsKey).Return(mustJSON(t, []models.Event{keep, drop}), true)
	mockStore.EXPECT().Save(testRecordsKey, mustJSON(t, []models.Event{keep})).Return(nil)

	require.NoError(t, svc.RemoveEvent(context.Background(), "drop"))
}

func TestRemoveEvent_RemoteFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockAdapter := newTestSyncSvc(t, ctrl, 1)

	mockAdapter.EXPECT().DeleteEvent(gomock.Any(), "e1").Return(adapter.ErrRemote)

	err := svc.RemoveEvent(context.Background(), "e1")
	require.ErrorIs(t, err, adapter.ErrRemote)
}

// ── merge semantics ──────────────────────────────────────────────────────────

func TestMergeByID_LocalOrderIsStable(t *testing.T) {
	local := []models.Event{
		testEvent("a", 1, "first"),
		testEvent("b", 1, "second"),
	}
	deltas := []models.Event{
		testEvent("b", 1, "second v2"),
		testEvent("c", 1, "third"),
	}

	merged := mergeByID(local, deltas, 1)
	require.Len(t, merged, 3)
	assert.Equal(t, "a", merged[0].ID)
	assert.Equal(t, "b", merged[1].ID)
	assert.Equal(t, "second v2", merged[1].Title)
	assert.Equal(t, "c", merged[2].ID)
}

func TestMergeByID_EmptyDeltaKeepsLocal(t *testing.T) {
	local := []models.Event{testEvent("a", 1, "only one")}
	merged := mergeByID(local, nil, 1)
	require.Len(t, merged, 1)
	assert.Equal(t, "only one", merged[0].Title)
}
