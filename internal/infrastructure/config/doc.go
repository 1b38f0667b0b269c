// Package config handles loading and validating WallPanel Core configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables
//   - Validation of required fields
//   - Default value handling
//
// Security Considerations:
//   - Sensitive values (API key, broker password, InfluxDB token) should be
//     set via environment variables rather than the config file
//   - The config file should have restricted permissions (0600)
//   - An empty http.api_key disables HTTP authentication entirely; only do
//     this on trusted networks
//
// Performance Characteristics:
//   - Configuration is loaded once at startup
//   - No runtime overhead after initial load
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.MQTT.BaseTopic)
package config
