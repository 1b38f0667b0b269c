// Package settings persists the small set of values that must survive
// restarts, backed by a single-table SQLite key-value store.
//
// The main tenant is the device identity: a generated, stable identifier
// used for MQTT discovery unique_ids and client identification. Runtime
// configuration does not live here; see internal/infrastructure/config.
package settings
