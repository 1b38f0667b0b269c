package command

import (
	"fmt"
)

// remoteKeys is the fixed set of navigation keys accepted by remoteKey.
var remoteKeys = map[string]bool{
	"up":        true,
	"down":      true,
	"left":      true,
	"right":     true,
	"select":    true,
	"back":      true,
	"home":      true,
	"menu":      true,
	"playpause": true,
}

// Validate checks a command against its per-name parameter schema.
//
// Runs on both transports before the handler is invoked; a rejected
// command never reaches the handler. Rules:
//   - setBrightness/setVolume: integer "value" in [0, 100]
//   - setUrl/navigate/playAudio: non-empty string "url"
//   - speak/toast: non-empty string "text"
//   - launchApp: non-empty string "package"
//   - evalJs: non-empty string "code"
//   - remoteKey: "key" from the fixed navigation set
//   - setAutoBrightness: boolean "enabled"
//   - parameterless commands accept anything extra (ignored downstream)
//
// Unknown names return ErrUnknownCommand; schema failures return
// ErrInvalidParams with detail.
func Validate(cmd Command) error {
	switch cmd.Name {
	case SetBrightness, SetVolume:
		value, ok := intParam(cmd.Params, "value")
		if !ok {
			return fmt.Errorf("%w: %s requires integer value", ErrInvalidParams, cmd.Name)
		}
		if value < 0 || value > 100 {
			return fmt.Errorf("%w: %s value %d out of range [0,100]", ErrInvalidParams, cmd.Name, value)
		}
		return nil

	case SetURL, Navigate, PlayAudio:
		if !stringParam(cmd.Params, "url") {
			return fmt.Errorf("%w: %s requires non-empty url", ErrInvalidParams, cmd.Name)
		}
		return nil

	case Speak, Toast:
		if !stringParam(cmd.Params, "text") {
			return fmt.Errorf("%w: %s requires non-empty text", ErrInvalidParams, cmd.Name)
		}
		return nil

	case LaunchApp:
		if !stringParam(cmd.Params, "package") {
			return fmt.Errorf("%w: launchApp requires non-empty package", ErrInvalidParams)
		}
		return nil

	case EvalJS:
		if !stringParam(cmd.Params, "code") {
			return fmt.Errorf("%w: evalJs requires non-empty code", ErrInvalidParams)
		}
		return nil

	case RemoteKey:
		key, _ := cmd.Params["key"].(string)
		if !remoteKeys[key] {
			return fmt.Errorf("%w: remoteKey key %q not recognised", ErrInvalidParams, key)
		}
		return nil

	case SetAutoBrightness:
		if _, ok := cmd.Params["enabled"].(bool); !ok {
			return fmt.Errorf("%w: setAutoBrightness requires boolean enabled", ErrInvalidParams)
		}
		return nil

	case ScreenOn, ScreenOff, Reboot, ClearCache, Wake,
		StartRotation, StopRotation, StopAudio:
		return nil
	}

	return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Name)
}

// intParam extracts an integer parameter, tolerating the float64 that
// encoding/json produces for numbers.
func intParam(params map[string]any, key string) (int, bool) {
	switch v := params[key].(type) {
	case int:
		return v, true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	}
	return 0, false
}

// stringParam reports whether params[key] is a non-empty string.
func stringParam(params map[string]any, key string) bool {
	s, ok := params[key].(string)
	return ok && s != ""
}
