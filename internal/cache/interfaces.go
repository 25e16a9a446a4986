// Package cache implements the client's durable key/value store backing the
// offline event cache.
//
// The store holds two kinds of entries per synchronized entity: the
// serialized record set under "<entity>_events" and the last-sync watermark
// under "last_<entity>_sync". Values are opaque byte payloads; serialization
// belongs to the caller.
package cache

//go:generate mockgen -source=interfaces.go -destination=../mock/cache_mock.go -package=mock

// Store is durable key/value storage for the offline cache.
type Store interface {
	// Load returns the value stored under key. The second return value is
	// false when no entry exists; a missing key is never an error. Driver
	// failures are logged and reported as absent so that readers fail open.
	Load(key string) ([]byte, bool)

	// Save stores value under key, replacing any previous entry. The write is
	// best-effort: a failure is reported to the caller but not retried.
	Save(key string, value []byte) error
}

// RecordsKey returns the store key holding the serialized record set of the
// given entity (e.g. "calendar_events").
func RecordsKey(entity string) string {
	return entity + "_events"
}

// LastSyncKey returns the store key holding the last-sync watermark of the
// given entity (e.g. "last_calendar_sync").
func LastSyncKey(entity string) string {
	return "last_" + entity + "_sync"
}
