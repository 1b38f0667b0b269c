// Package session owns the MQTT side of the control plane.
//
// The Manager maintains exactly one logical broker connection with a
// four-state lifecycle (disconnected, connecting, connected,
// reconnecting). On every successful connect it publishes retained
// availability, the Home Assistant discovery batch, and an immediate
// state snapshot, then subscribes to the device's command namespace and
// runs the periodic state publisher. An explicit Disconnect publishes
// offline itself before closing; the Last Will covers unclean drops.
//
// Inbound set/# messages flow through the shared command taxonomy
// (internal/command) and are dispatched asynchronously, so the broker
// I/O thread never blocks on device actions.
package session
