package command

import "context"

// Canonical command names. Both transports converge on this closed
// vocabulary before anything reaches the handler; unknown names never
// get through Validate.
const (
	SetBrightness     = "setBrightness"
	SetVolume         = "setVolume"
	ScreenOn          = "screenOn"
	ScreenOff         = "screenOff"
	SetURL            = "setUrl"
	Navigate          = "navigate"
	Speak             = "speak"
	Toast             = "toast"
	LaunchApp         = "launchApp"
	EvalJS            = "evalJs"
	Reboot            = "reboot"
	ClearCache        = "clearCache"
	Wake              = "wake"
	StartRotation     = "startRotation"
	StopRotation      = "stopRotation"
	RemoteKey         = "remoteKey"
	PlayAudio         = "playAudio"
	StopAudio         = "stopAudio"
	SetAutoBrightness = "setAutoBrightness"
)

// Command is the canonical (name, parameters) pair dispatched to the
// device-action handler. Commands are transient values with no identity.
type Command struct {
	Name   string
	Params map[string]any
}

// Handler executes a validated canonical command.
//
// Implementations live outside this module (the device-action layer); a
// dev-mode loopback lives in cmd/wallpanel. Handlers are invoked from
// HTTP request goroutines and MQTT dispatch goroutines concurrently and
// must be safe for that. Validation runs upstream, but handlers should
// still reject names they don't recognise.
type Handler interface {
	Execute(ctx context.Context, cmd Command) (map[string]any, error)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, cmd Command) (map[string]any, error)

// Execute implements Handler.
func (f HandlerFunc) Execute(ctx context.Context, cmd Command) (map[string]any, error) {
	return f(ctx, cmd)
}
