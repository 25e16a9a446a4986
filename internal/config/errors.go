package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing server URL or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidCacheConfigs indicates invalid client cache settings
	// (for example, an empty cache file path).
	ErrInvalidCacheConfigs = errors.New("invalid cache configuration")
	// ErrInvalidWorkerConfigs indicates invalid background job settings
	// (for example, zero sync interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
