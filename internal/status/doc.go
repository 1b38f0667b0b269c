// Package status defines the device state model served over HTTP and MQTT.
//
// The Snapshot struct is the single source of truth for the shape of the
// state tree: fixed top-level keys, primitive sub-fields, -1 sentinels for
// unavailable numerics. Both transports marshal the same struct, so the
// JSON a REST client reads and the retained MQTT state payload never
// diverge.
//
// The Provider interface is the contract with the external layer that owns
// the live data. Safe() enforces the "never throws" half of that contract
// on behalf of consumers.
package status
