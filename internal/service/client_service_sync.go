package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dmarakulin/learn-logbook/internal/adapter"
	"github.com/dmarakulin/learn-logbook/internal/cache"
	"github.com/dmarakulin/learn-logbook/internal/logger"
	"github.com/dmarakulin/learn-logbook/models"
)

// calendarEntity names the synchronized record collection inside the cache
// store ("calendar_events" / "last_calendar_sync").
const calendarEntity = "calendar"

type clientSyncService struct {
	cacheStore cache.Store
	adapter    adapter.ServerAdapter
	identity   Identity
	logger     *logger.Logger

	recordsKey   string
	watermarkKey string

	// now is the clock used for the watermark; overridable in tests.
	now func() time.Time
}

// NewClientSyncService constructs the calendar event reconciler on top of the
// durable cache store and the server adapter. The identity collaborator
// scopes every operation to the signed-in user.
func NewClientSyncService(cacheStore cache.Store, serverAdapter adapter.ServerAdapter, identity Identity, log *logger.Logger) ClientSyncService {
	return &clientSyncService{
		cacheStore:   cacheStore,
		adapter:      serverAdapter,
		identity:     identity,
		logger:       log,
		recordsKey:   cache.RecordsKey(calendarEntity),
		watermarkKey: cache.LastSyncKey(calendarEntity),
		now:          time.Now,
	}
}

// Sync implements ClientSyncService.
//
// The watermark persisted after a successful cycle is the time the fetch was
// issued, not the max updated_at seen: client/server clock skew then costs a
// small idempotent re-fetch instead of silently missed updates. The watermark
// write always happens after the merge it covers, and is skipped entirely
// when persisting the merged set failed, so unsaved deltas are re-delivered
// on the next cycle.
func (s *clientSyncService) Sync(ctx context.Context) ([]models.Event, error) {
	ownerID, ok := s.identity.CurrentOwnerID()
	if !ok {
		return nil, ErrNotAuthenticated
	}

	since := s.loadWatermark()
	fetchedAt := s.now()

	deltas, err := s.adapter.EventsUpdatedSince(ctx, since)
	if err != nil {
		// Availability over freshness: the caller gets the last known-good
		// snapshot instead of an error, and the watermark stays put.
		s.logger.Warn().Err(err).Time("since", since).Msg("delta fetch failed, serving cached snapshot")
		return s.loadSnapshot(ownerID), nil
	}

	merged := mergeByID(s.loadSnapshot(ownerID), deltas, ownerID)

	if err := s.saveSnapshot(merged); err != nil {
		s.logger.Err(err).Msg("persisting merged snapshot failed, watermark not advanced")
		return merged, nil
	}
	s.saveWatermark(fetchedAt)

	return merged, nil
}

// LocalEvents implements ClientSyncService.
func (s *clientSyncService) LocalEvents(_ context.Context) ([]models.Event, error) {
	ownerID, ok := s.identity.CurrentOwnerID()
	if !ok {
		return nil, ErrNotAuthenticated
	}

	return s.loadSnapshot(ownerID), nil
}

// AddEvent implements ClientSyncService.
func (s *clientSyncService) AddEvent(ctx context.Context, event models.Event) (models.Event, error) {
	ownerID, ok := s.identity.CurrentOwnerID()
	if !ok {
		return models.Event{}, ErrNotAuthenticated
	}
	event.OwnerID = ownerID

	created, err := s.adapter.CreateEvent(ctx, event)
	if err != nil {
		return models.Event{}, err
	}

	merged := mergeByID(s.loadSnapshot(ownerID), []models.Event{created}, ownerID)
	if err := s.saveSnapshot(merged); err != nil {
		s.logger.Err(err).Str("event_id", created.ID).Msg("caching created event failed")
	}

	return created, nil
}

// UpdateEvent implements ClientSyncService.
func (s *clientSyncService) UpdateEvent(ctx context.Context, id string, update models.EventUpdate) error {
	ownerID, ok := s.identity.CurrentOwnerID()
	if !ok {
		return ErrNotAuthenticated
	}

	if err := s.adapter.UpdateEvent(ctx, id, update); err != nil {
		return err
	}

	snapshot := s.loadSnapshot(ownerID)
	for i := range snapshot {
		if snapshot[i].ID == id {
			update.ApplyTo(&snapshot[i])
			if err := s.saveSnapshot(snapshot); err != nil {
				s.logger.Err(err).Str("event_id", id).Msg("caching updated event failed")
			}
			return nil
		}
	}

	// Never synced locally: the next full sync will pick the record up.
	return nil
}

// RemoveEvent implements ClientSyncService.
func (s *clientSyncService) RemoveEvent(ctx context.Context, id string) error {
	ownerID, ok := s.identity.CurrentOwnerID()
	if !ok {
		return ErrNotAuthenticated
	}

	if err := s.adapter.DeleteEvent(ctx, id); err != nil {
		return err
	}

	snapshot := s.loadSnapshot(ownerID)
	filtered := snapshot[:0:0]
	for _, ev := range snapshot {
		if ev.ID != id {
			filtered = append(filtered, ev)
		}
	}

	if err := s.saveSnapshot(filtered); err != nil {
		s.logger.Err(err).Str("event_id", id).Msg("caching event removal failed")
	}

	return nil
}

// loadSnapshot reads the cached event set, scoped to ownerID. A missing or
// corrupt payload yields an empty set: local corruption must never fail a
// sync.
func (s *clientSyncService) loadSnapshot(ownerID int64) []models.Event {
	payload, found := s.cacheStore.Load(s.recordsKey)
	if !found {
		return nil
	}

	var events []models.Event
	if err := json.Unmarshal(payload, &events); err != nil {
		s.logger.Warn().Err(err).Msg("corrupt event cache payload, treating as empty")
		return nil
	}

	// Drop records of a previously signed-in user.
	scoped := events[:0]
	for _, ev := range events {
		if ev.OwnerID == ownerID {
			scoped = append(scoped, ev)
		}
	}

	return scoped
}

func (s *clientSyncService) saveSnapshot(events []models.Event) error {
	payload, err := json.Marshal(events)
	if err != nil {
		return err
	}
	return s.cacheStore.Save(s.recordsKey, payload)
}

// loadWatermark reads last_calendar_sync, defaulting to the epoch when the
// entry is absent or unparsable.
func (s *clientSyncService) loadWatermark() time.Time {
	payload, found := s.cacheStore.Load(s.watermarkKey)
	if !found {
		return time.Time{}
	}

	mark, err := time.Parse(time.RFC3339Nano, string(payload))
	if err != nil {
		s.logger.Warn().Err(err).Msg("unparsable sync watermark, starting from epoch")
		return time.Time{}
	}

	return mark
}

func (s *clientSyncService) saveWatermark(mark time.Time) {
	if err := s.cacheStore.Save(s.watermarkKey, []byte(mark.UTC().Format(time.RFC3339Nano))); err != nil {
		s.logger.Err(err).Msg("persisting sync watermark failed")
	}
}

// mergeByID upserts deltas into local keyed by event ID: the remote value
// replaces the whole local record, new records are appended, and local
// records absent from the delta stay untouched. Delta records owned by a
// different user are dropped.
func mergeByID(local, deltas []models.Event, ownerID int64) []models.Event {
	merged := local

	for _, remote := range deltas {
		if remote.OwnerID != ownerID {
			continue
		}

		replaced := false
		for i := range merged {
			if merged[i].ID == remote.ID {
				merged[i] = remote
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, remote)
		}
	}

	return merged
}
