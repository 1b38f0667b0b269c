// Package discovery builds Home Assistant MQTT discovery configs.
//
// Build is a pure function from device identity to the complete set of
// retained (topic, payload) pairs: the session manager publishes them
// after every successful connect, and a discovery-capable consumer picks
// up the device's sensors and controls without manual configuration.
//
// Topic shape: {prefix}/{component}/{deviceID}/{objectID}/config.
package discovery
