// Package command defines the canonical command vocabulary shared by the
// HTTP and MQTT transports.
//
// Both transports normalise their inputs into a Command before the
// device-action handler runs: HTTP handlers map validated body fields,
// the MQTT session maps topic suffixes plus raw payloads via MapEntity.
// Validate enforces each command's parameter schema at that boundary, so
// handlers only ever see well-formed commands from the closed name set.
package command
