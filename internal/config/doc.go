// Package config provides configuration loading, merging, and validation for
// the logbook server and client.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// [GetStructuredConfig] returns the full server/runtime configuration;
// [GetClientConfig] narrows it to the view the client binary needs (adapter
// address, local cache path, sync interval, export settings).
package config
