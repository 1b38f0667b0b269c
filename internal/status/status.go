package status

// Sentinel for numeric readings the provider could not supply.
// Consumers check for -1 instead of null; every key is always present.
const Unavailable = -1

// Snapshot is the complete device state at one point in time.
//
// The shape is fixed: every top-level key and every sub-field is always
// present in the marshalled JSON, even when the underlying data source
// fails. Unavailable numerics carry -1, unavailable strings are empty.
// Snapshots are constructed fresh on every read and never cached here.
type Snapshot struct {
	Battery        Battery        `json:"battery"`
	Screen         Screen         `json:"screen"`
	Audio          Audio          `json:"audio"`
	Webview        Webview        `json:"webview"`
	Device         Device         `json:"device"`
	Wifi           Wifi           `json:"wifi"`
	Rotation       Rotation       `json:"rotation"`
	Sensors        Sensors        `json:"sensors"`
	AutoBrightness AutoBrightness `json:"autoBrightness"`
	Storage        Storage        `json:"storage"`
	Memory         Memory         `json:"memory"`
}

// Battery reports charge state.
type Battery struct {
	Level      int  `json:"level"` // 0-100, -1 when unavailable
	Charging   bool `json:"charging"`
	ACPlugged  bool `json:"acPlugged"`
	USBPlugged bool `json:"usbPlugged"`
}

// Screen reports display power and brightness.
type Screen struct {
	On         bool `json:"on"`
	Brightness int  `json:"brightness"` // 0-100, -1 when unavailable
}

// Audio reports playback state and volume.
type Audio struct {
	Playing bool `json:"playing"`
	Volume  int  `json:"volume"` // 0-100, -1 when unavailable
}

// Webview reports the browser surface state.
type Webview struct {
	URL       string `json:"url"`
	PageTitle string `json:"pageTitle"`
}

// Device reports static identity and runtime info.
type Device struct {
	Model         string `json:"model"`
	Manufacturer  string `json:"manufacturer"`
	OSVersion     string `json:"osVersion"`
	AppVersion    string `json:"appVersion"`
	UptimeSeconds int64  `json:"uptimeSeconds"` // -1 when unavailable
}

// Wifi reports network attachment.
type Wifi struct {
	SSID        string `json:"ssid"`
	SignalLevel int    `json:"signalLevel"` // 0-100, -1 when unavailable
	IP          string `json:"ip"`
}

// Rotation reports the page-rotation scheduler state.
type Rotation struct {
	Active          bool `json:"active"`
	IntervalSeconds int  `json:"intervalSeconds"` // -1 when unavailable
}

// Sensors reports ambient readings and detection flags.
type Sensors struct {
	LightLevel   float64 `json:"lightLevel"` // lux, -1 when unavailable
	Motion       bool    `json:"motion"`
	FaceDetected bool    `json:"faceDetected"`
	QRCode       string  `json:"qrCode"`
}

// AutoBrightness reports the adaptive-brightness setting.
type AutoBrightness struct {
	Enabled bool `json:"enabled"`
}

// Storage reports persistent storage capacity.
type Storage struct {
	FreeBytes  int64 `json:"freeBytes"`  // -1 when unavailable
	TotalBytes int64 `json:"totalBytes"` // -1 when unavailable
}

// Memory reports RAM capacity.
type Memory struct {
	FreeBytes  int64 `json:"freeBytes"`  // -1 when unavailable
	TotalBytes int64 `json:"totalBytes"` // -1 when unavailable
}

// Default returns a fully-populated fallback snapshot.
//
// Used when the provider fails or is absent. Every numeric reading is the
// -1 sentinel, every boolean false, every string empty, so the marshalled
// shape is identical to a healthy snapshot.
func Default() Snapshot {
	return Snapshot{
		Battery: Battery{
			Level: Unavailable,
		},
		Screen: Screen{
			Brightness: Unavailable,
		},
		Audio: Audio{
			Volume: Unavailable,
		},
		Device: Device{
			UptimeSeconds: Unavailable,
		},
		Wifi: Wifi{
			SignalLevel: Unavailable,
		},
		Rotation: Rotation{
			IntervalSeconds: Unavailable,
		},
		Sensors: Sensors{
			LightLevel: Unavailable,
		},
		Storage: Storage{
			FreeBytes:  Unavailable,
			TotalBytes: Unavailable,
		},
		Memory: Memory{
			FreeBytes:  Unavailable,
			TotalBytes: Unavailable,
		},
	}
}
