// Package telemetry records status snapshots to InfluxDB.
//
// The recorder is optional and config-gated. When enabled, every
// published snapshot also becomes a wallpanel_status measurement tagged
// with the device id, giving battery, memory, storage, and sensor
// history without any extra polling. Writes are batched and
// non-blocking; telemetry failures never affect the control plane.
package telemetry
