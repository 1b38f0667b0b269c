package command

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MapEntity translates an MQTT command-topic suffix plus raw payload into
// a canonical command.
//
// The entity is the token after "set/" in the topic, e.g. "brightness" in
// wallpanel/kitchen-panel/set/brightness. The mapping table is fixed:
//
//	brightness       -> setBrightness {value: int(payload)}
//	volume           -> setVolume {value: int(payload)}
//	screen           -> screenOn / screenOff (payload ON/OFF, case-insensitive)
//	url              -> setUrl {url: payload}
//	tts              -> speak {text: payload}
//	toast            -> toast {text: payload}
//	app              -> launchApp {package: payload}
//	js               -> evalJs {code: payload}
//	reboot           -> reboot
//	clear_cache      -> clearCache
//	wake             -> wake
//	rotation         -> startRotation / stopRotation (payload START/STOP)
//	remote           -> remoteKey {key: payload}
//	auto_brightness  -> setAutoBrightness {enabled: bool} (payload ON/OFF)
//	audio_play       -> playAudio (JSON payload, or {url: payload} fallback)
//	audio_stop       -> stopAudio
//
// Returns ErrUnknownEntity for anything else; the caller logs and drops
// the message without touching the handler.
func MapEntity(entity, payload string) (Command, error) {
	switch entity {
	case "brightness":
		value, err := strconv.Atoi(strings.TrimSpace(payload))
		if err != nil {
			return Command{}, fmt.Errorf("%w: brightness payload %q is not an integer", ErrInvalidParams, payload)
		}
		return Command{Name: SetBrightness, Params: map[string]any{"value": value}}, nil

	case "volume":
		value, err := strconv.Atoi(strings.TrimSpace(payload))
		if err != nil {
			return Command{}, fmt.Errorf("%w: volume payload %q is not an integer", ErrInvalidParams, payload)
		}
		return Command{Name: SetVolume, Params: map[string]any{"value": value}}, nil

	case "screen":
		switch strings.ToUpper(strings.TrimSpace(payload)) {
		case "ON":
			return Command{Name: ScreenOn}, nil
		case "OFF":
			return Command{Name: ScreenOff}, nil
		}
		return Command{}, fmt.Errorf("%w: screen payload %q, want ON or OFF", ErrInvalidParams, payload)

	case "url":
		return Command{Name: SetURL, Params: map[string]any{"url": payload}}, nil

	case "tts":
		return Command{Name: Speak, Params: map[string]any{"text": payload}}, nil

	case "toast":
		return Command{Name: Toast, Params: map[string]any{"text": payload}}, nil

	case "app":
		return Command{Name: LaunchApp, Params: map[string]any{"package": payload}}, nil

	case "js":
		return Command{Name: EvalJS, Params: map[string]any{"code": payload}}, nil

	case "reboot":
		return Command{Name: Reboot}, nil

	case "clear_cache":
		return Command{Name: ClearCache}, nil

	case "wake":
		return Command{Name: Wake}, nil

	case "rotation":
		switch strings.ToUpper(strings.TrimSpace(payload)) {
		case "START":
			return Command{Name: StartRotation}, nil
		case "STOP":
			return Command{Name: StopRotation}, nil
		}
		return Command{}, fmt.Errorf("%w: rotation payload %q, want START or STOP", ErrInvalidParams, payload)

	case "remote":
		return Command{Name: RemoteKey, Params: map[string]any{"key": strings.ToLower(strings.TrimSpace(payload))}}, nil

	case "auto_brightness":
		switch strings.ToUpper(strings.TrimSpace(payload)) {
		case "ON":
			return Command{Name: SetAutoBrightness, Params: map[string]any{"enabled": true}}, nil
		case "OFF":
			return Command{Name: SetAutoBrightness, Params: map[string]any{"enabled": false}}, nil
		}
		return Command{}, fmt.Errorf("%w: auto_brightness payload %q, want ON or OFF", ErrInvalidParams, payload)

	case "audio_play":
		// Structured payload preferred; a bare URL string also works.
		var params map[string]any
		if err := json.Unmarshal([]byte(payload), &params); err != nil || params == nil {
			params = map[string]any{"url": payload}
		}
		return Command{Name: PlayAudio, Params: params}, nil

	case "audio_stop":
		return Command{Name: StopAudio}, nil
	}

	return Command{}, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
}
