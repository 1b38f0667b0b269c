package discovery

// definition describes one catalog entity. The catalog is enumerated once
// in code, never data-driven at runtime.
type definition struct {
	component      string // sensor, binary_sensor, number, switch, button, text
	objectID       string
	name           string
	hasState       bool
	commandEntity  string // suffix under set/, empty for read-only entities
	valueTemplate  string
	unit           string
	deviceClass    string
	icon           string
	payloadOn      string
	payloadOff     string
	payloadPress   string
	min, max, step *int
	mode           string
}

func intPtr(v int) *int { return &v }

// catalog is the fixed set of entities this device advertises.
var catalog = []definition{
	// Read-only sensors
	{
		component:     "sensor",
		objectID:      "battery_level",
		name:          "Battery Level",
		hasState:      true,
		valueTemplate: "{{ value_json.battery.level }}",
		unit:          "%",
		deviceClass:   "battery",
	},
	{
		component:     "sensor",
		objectID:      "light_level",
		name:          "Light Level",
		hasState:      true,
		valueTemplate: "{{ value_json.sensors.lightLevel }}",
		unit:          "lx",
		deviceClass:   "illuminance",
	},
	{
		component:     "sensor",
		objectID:      "memory_free",
		name:          "Memory Free",
		hasState:      true,
		valueTemplate: "{{ value_json.memory.freeBytes }}",
		unit:          "B",
		icon:          "mdi:memory",
	},
	{
		component:     "sensor",
		objectID:      "storage_free",
		name:          "Storage Free",
		hasState:      true,
		valueTemplate: "{{ value_json.storage.freeBytes }}",
		unit:          "B",
		icon:          "mdi:harddisk",
	},
	{
		component:     "sensor",
		objectID:      "current_url",
		name:          "Current URL",
		hasState:      true,
		valueTemplate: "{{ value_json.webview.url }}",
		icon:          "mdi:web",
	},

	// Binary sensors
	{
		component:     "binary_sensor",
		objectID:      "charging",
		name:          "Charging",
		hasState:      true,
		valueTemplate: "{{ 'ON' if value_json.battery.charging else 'OFF' }}",
		deviceClass:   "battery_charging",
		payloadOn:     "ON",
		payloadOff:    "OFF",
	},
	{
		component:     "binary_sensor",
		objectID:      "screen_on",
		name:          "Screen On",
		hasState:      true,
		valueTemplate: "{{ 'ON' if value_json.screen.on else 'OFF' }}",
		icon:          "mdi:monitor",
		payloadOn:     "ON",
		payloadOff:    "OFF",
	},
	{
		component:     "binary_sensor",
		objectID:      "motion",
		name:          "Motion",
		hasState:      true,
		valueTemplate: "{{ 'ON' if value_json.sensors.motion else 'OFF' }}",
		deviceClass:   "motion",
		payloadOn:     "ON",
		payloadOff:    "OFF",
	},
	{
		component:     "binary_sensor",
		objectID:      "face_detected",
		name:          "Face Detected",
		hasState:      true,
		valueTemplate: "{{ 'ON' if value_json.sensors.faceDetected else 'OFF' }}",
		deviceClass:   "occupancy",
		payloadOn:     "ON",
		payloadOff:    "OFF",
	},
	{
		component:     "binary_sensor",
		objectID:      "qr_code",
		name:          "QR Code",
		hasState:      true,
		valueTemplate: "{{ 'ON' if value_json.sensors.qrCode else 'OFF' }}",
		icon:          "mdi:qrcode-scan",
		payloadOn:     "ON",
		payloadOff:    "OFF",
	},

	// Numeric controls
	{
		component:     "number",
		objectID:      "brightness",
		name:          "Brightness",
		hasState:      true,
		commandEntity: "brightness",
		valueTemplate: "{{ value_json.screen.brightness }}",
		icon:          "mdi:brightness-6",
		min:           intPtr(0),
		max:           intPtr(100),
		step:          intPtr(1),
		mode:          "slider",
	},
	{
		component:     "number",
		objectID:      "volume",
		name:          "Volume",
		hasState:      true,
		commandEntity: "volume",
		valueTemplate: "{{ value_json.audio.volume }}",
		icon:          "mdi:volume-high",
		min:           intPtr(0),
		max:           intPtr(100),
		step:          intPtr(1),
		mode:          "slider",
	},

	// Switches
	{
		component:     "switch",
		objectID:      "screen",
		name:          "Screen",
		hasState:      true,
		commandEntity: "screen",
		valueTemplate: "{{ 'ON' if value_json.screen.on else 'OFF' }}",
		icon:          "mdi:monitor",
		payloadOn:     "ON",
		payloadOff:    "OFF",
	},
	{
		component:     "switch",
		objectID:      "auto_brightness",
		name:          "Auto Brightness",
		hasState:      true,
		commandEntity: "auto_brightness",
		valueTemplate: "{{ 'ON' if value_json.autoBrightness.enabled else 'OFF' }}",
		icon:          "mdi:brightness-auto",
		payloadOn:     "ON",
		payloadOff:    "OFF",
	},

	// Momentary buttons
	{
		component:     "button",
		objectID:      "reboot",
		name:          "Reboot",
		commandEntity: "reboot",
		deviceClass:   "restart",
		payloadPress:  "PRESS",
	},
	{
		component:     "button",
		objectID:      "wake",
		name:          "Wake",
		commandEntity: "wake",
		icon:          "mdi:alarm",
		payloadPress:  "PRESS",
	},
	{
		component:     "button",
		objectID:      "clear_cache",
		name:          "Clear Cache",
		commandEntity: "clear_cache",
		icon:          "mdi:broom",
		payloadPress:  "PRESS",
	},

	// Free-text inputs
	{
		component:     "text",
		objectID:      "url",
		name:          "URL",
		hasState:      true,
		commandEntity: "url",
		valueTemplate: "{{ value_json.webview.url }}",
		icon:          "mdi:web",
	},
}
