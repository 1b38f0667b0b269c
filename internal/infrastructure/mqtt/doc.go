// Package mqtt provides MQTT client connectivity for WallPanel Core.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) registration for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// The client is a transport wrapper only. Availability payloads, retained
// state publishing, discovery config, and command dispatch are the session
// manager's responsibility (internal/session); the wrapper keeps paho
// specifics out of that layer and restores subscriptions transparently
// across reconnects.
//
// # Security Considerations
//
//   - TLS is recommended for non-local brokers (broker.tls: true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT, mqtt.Will{
//	    Topic:   "wallpanel/kitchen-panel/availability",
//	    Payload: "offline",
//	    QoS:     1,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	err = client.Subscribe("wallpanel/kitchen-panel/set/#", 1,
//	    func(topic string, payload []byte) error {
//	        log.Printf("Received: %s = %s", topic, payload)
//	        return nil
//	    })
package mqtt
