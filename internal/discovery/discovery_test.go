package discovery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func testParams() Params {
	return Params{
		DeviceID:  "wallpanel-abc123",
		TopicID:   "kitchen-panel",
		BaseTopic: "wallpanel",
		Prefix:    "homeassistant",
		Version:   "1.2.3",
		LocalIP:   "192.168.1.50:2971",
	}
}

// =============================================================================
// Purity Tests
// =============================================================================

func TestBuildDeterministic(t *testing.T) {
	b := NewBuilder(testParams())

	first := b.Build()
	second := b.Build()

	if len(first) != len(second) {
		t.Fatalf("Build() lengths differ: %d vs %d", len(first), len(second))
	}

	for i := range first {
		if first[i].Topic != second[i].Topic {
			t.Errorf("entry %d topic differs: %q vs %q", i, first[i].Topic, second[i].Topic)
		}
		if !bytes.Equal(first[i].Payload, second[i].Payload) {
			t.Errorf("entry %d payload differs:\n%s\n%s", i, first[i].Payload, second[i].Payload)
		}
	}
}

func TestBuildSeparateBuildersIdentical(t *testing.T) {
	first := NewBuilder(testParams()).Build()
	second := NewBuilder(testParams()).Build()

	for i := range first {
		if !bytes.Equal(first[i].Payload, second[i].Payload) {
			t.Errorf("entry %d payload differs across builders", i)
		}
	}
}

// =============================================================================
// Topic Shape Tests
// =============================================================================

func TestBuildTopicShape(t *testing.T) {
	params := testParams()
	entries := NewBuilder(params).Build()

	validComponents := map[string]bool{
		"sensor": true, "binary_sensor": true, "number": true,
		"switch": true, "button": true, "text": true,
	}

	for _, entry := range entries {
		parts := strings.Split(entry.Topic, "/")
		if len(parts) != 5 {
			t.Errorf("topic %q has %d segments, want 5", entry.Topic, len(parts))
			continue
		}
		if parts[0] != params.Prefix {
			t.Errorf("topic %q prefix = %q, want %q", entry.Topic, parts[0], params.Prefix)
		}
		if !validComponents[parts[1]] {
			t.Errorf("topic %q component = %q, not a valid kind", entry.Topic, parts[1])
		}
		if parts[2] != params.DeviceID {
			t.Errorf("topic %q device segment = %q, want %q", entry.Topic, parts[2], params.DeviceID)
		}
		if parts[4] != "config" {
			t.Errorf("topic %q last segment = %q, want config", entry.Topic, parts[4])
		}
	}
}

// =============================================================================
// Catalog Coverage Tests
// =============================================================================

func TestBuildCatalogCoverage(t *testing.T) {
	entries := NewBuilder(testParams()).Build()

	wantObjects := map[string]string{
		"battery_level":   "sensor",
		"light_level":     "sensor",
		"memory_free":     "sensor",
		"storage_free":    "sensor",
		"current_url":     "sensor",
		"charging":        "binary_sensor",
		"screen_on":       "binary_sensor",
		"motion":          "binary_sensor",
		"face_detected":   "binary_sensor",
		"qr_code":         "binary_sensor",
		"brightness":      "number",
		"volume":          "number",
		"screen":          "switch",
		"auto_brightness": "switch",
		"reboot":          "button",
		"wake":            "button",
		"clear_cache":     "button",
		"url":             "text",
	}

	if len(entries) != len(wantObjects) {
		t.Errorf("Build() returned %d entries, want %d", len(entries), len(wantObjects))
	}

	seen := make(map[string]bool)
	for _, entry := range entries {
		parts := strings.Split(entry.Topic, "/")
		component, objectID := parts[1], parts[3]

		wantComponent, ok := wantObjects[objectID]
		if !ok {
			t.Errorf("unexpected entity %q", objectID)
			continue
		}
		if component != wantComponent {
			t.Errorf("entity %q component = %q, want %q", objectID, component, wantComponent)
		}
		seen[objectID] = true
	}

	for objectID := range wantObjects {
		if !seen[objectID] {
			t.Errorf("missing entity %q", objectID)
		}
	}
}

// =============================================================================
// Payload Shape Tests
// =============================================================================

func TestBuildPayloadCommonFields(t *testing.T) {
	params := testParams()
	entries := NewBuilder(params).Build()

	wantAvailability := "wallpanel/kitchen-panel/availability"

	for _, entry := range entries {
		var p map[string]any
		if err := json.Unmarshal(entry.Payload, &p); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", entry.Topic, err)
		}

		objectID := strings.Split(entry.Topic, "/")[3]

		wantUnique := fmt.Sprintf("%s_%s", params.DeviceID, objectID)
		if p["unique_id"] != wantUnique {
			t.Errorf("%s unique_id = %v, want %q", objectID, p["unique_id"], wantUnique)
		}

		if p["availability_topic"] != wantAvailability {
			t.Errorf("%s availability_topic = %v, want %q", objectID, p["availability_topic"], wantAvailability)
		}

		dev, ok := p["device"].(map[string]any)
		if !ok {
			t.Fatalf("%s has no device block", objectID)
		}
		if dev["model"] != "WallPanel" {
			t.Errorf("%s device.model = %v, want WallPanel", objectID, dev["model"])
		}
		if dev["sw_version"] != params.Version {
			t.Errorf("%s device.sw_version = %v, want %q", objectID, dev["sw_version"], params.Version)
		}
		if dev["configuration_url"] != "http://192.168.1.50:2971" {
			t.Errorf("%s device.configuration_url = %v", objectID, dev["configuration_url"])
		}

		ids, ok := dev["identifiers"].([]any)
		if !ok || len(ids) != 1 || ids[0] != params.DeviceID {
			t.Errorf("%s device.identifiers = %v, want [%q]", objectID, dev["identifiers"], params.DeviceID)
		}
	}
}

func TestBuildNumberPayload(t *testing.T) {
	entries := NewBuilder(testParams()).Build()

	var brightness map[string]any
	for _, entry := range entries {
		if strings.Contains(entry.Topic, "/number/") && strings.Contains(entry.Topic, "/brightness/") {
			if err := json.Unmarshal(entry.Payload, &brightness); err != nil {
				t.Fatalf("Unmarshal error = %v", err)
			}
		}
	}
	if brightness == nil {
		t.Fatal("brightness number entity not found")
	}

	if brightness["command_topic"] != "wallpanel/kitchen-panel/set/brightness" {
		t.Errorf("command_topic = %v", brightness["command_topic"])
	}
	if brightness["state_topic"] != "wallpanel/kitchen-panel/state" {
		t.Errorf("state_topic = %v", brightness["state_topic"])
	}
	if brightness["min"] != float64(0) || brightness["max"] != float64(100) {
		t.Errorf("bounds = [%v, %v], want [0, 100]", brightness["min"], brightness["max"])
	}
	if brightness["mode"] != "slider" {
		t.Errorf("mode = %v, want slider", brightness["mode"])
	}
}

func TestBuildButtonHasNoStateTopic(t *testing.T) {
	entries := NewBuilder(testParams()).Build()

	for _, entry := range entries {
		if !strings.Contains(entry.Topic, "/button/") {
			continue
		}

		var p map[string]any
		if err := json.Unmarshal(entry.Payload, &p); err != nil {
			t.Fatalf("Unmarshal error = %v", err)
		}

		if _, ok := p["state_topic"]; ok {
			t.Errorf("button %s carries state_topic, want none", entry.Topic)
		}
		if p["payload_press"] != "PRESS" {
			t.Errorf("button %s payload_press = %v, want PRESS", entry.Topic, p["payload_press"])
		}
		if _, ok := p["command_topic"]; !ok {
			t.Errorf("button %s missing command_topic", entry.Topic)
		}
	}
}

func TestBuildNoConfigurationURLWhenNoIP(t *testing.T) {
	params := testParams()
	params.LocalIP = ""
	entries := NewBuilder(params).Build()

	var p map[string]any
	if err := json.Unmarshal(entries[0].Payload, &p); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	dev := p["device"].(map[string]any)
	if _, ok := dev["configuration_url"]; ok {
		t.Error("device.configuration_url present with empty LocalIP, want omitted")
	}
}
