package discovery

import (
	"encoding/json"
	"fmt"
)

// Device block constants shared by every entity payload.
const (
	deviceModel        = "WallPanel"
	deviceManufacturer = "WallPanel Project"
)

// Params are the inputs the builder derives everything from.
//
// Build is a pure function of these six values: no I/O, no clock, no
// randomness. Identical params produce byte-identical output, so configs
// can be diffed across versions.
type Params struct {
	// DeviceID is the stable per-install identifier. Used for unique_id
	// and the discovery topic path, never shown to users.
	DeviceID string

	// TopicID is the human-readable topic segment (user-chosen name, or
	// DeviceID when none is set).
	TopicID string

	// BaseTopic is the root of the device's own topic tree.
	BaseTopic string

	// Prefix is the discovery prefix, normally "homeassistant".
	Prefix string

	// Version is the software version advertised in the device block.
	Version string

	// LocalIP is the device's current address, used for the
	// configuration URL. Empty omits the URL.
	LocalIP string
}

// Entry is one retained discovery message.
type Entry struct {
	Topic   string
	Payload []byte
}

// Builder produces the discovery config set for one device.
type Builder struct {
	params Params
}

// NewBuilder returns a builder for the given params.
func NewBuilder(params Params) *Builder {
	return &Builder{params: params}
}

// Build returns the complete set of (topic, payload) discovery pairs for
// the fixed entity catalog. The session manager publishes each retained
// after every successful connect.
func (b *Builder) Build() []Entry {
	dev := b.deviceBlock()
	stateTopic := fmt.Sprintf("%s/%s/state", b.params.BaseTopic, b.params.TopicID)
	availabilityTopic := fmt.Sprintf("%s/%s/availability", b.params.BaseTopic, b.params.TopicID)
	commandBase := fmt.Sprintf("%s/%s/set", b.params.BaseTopic, b.params.TopicID)

	entries := make([]Entry, 0, len(catalog))
	for _, def := range catalog {
		p := payload{
			Name:              def.name,
			UniqueID:          fmt.Sprintf("%s_%s", b.params.DeviceID, def.objectID),
			AvailabilityTopic: availabilityTopic,
			ValueTemplate:     def.valueTemplate,
			UnitOfMeasurement: def.unit,
			DeviceClass:       def.deviceClass,
			Icon:              def.icon,
			PayloadOn:         def.payloadOn,
			PayloadOff:        def.payloadOff,
			PayloadPress:      def.payloadPress,
			Min:               def.min,
			Max:               def.max,
			Step:              def.step,
			Mode:              def.mode,
			Device:            dev,
		}

		if def.hasState {
			p.StateTopic = stateTopic
		}
		if def.commandEntity != "" {
			p.CommandTopic = fmt.Sprintf("%s/%s", commandBase, def.commandEntity)
		}

		// Fixed struct field order keeps the marshalled bytes stable.
		data, err := json.Marshal(p)
		if err != nil {
			// Only reachable with an unmarshalable catalog entry,
			// which is a programming error.
			panic(fmt.Sprintf("discovery: marshal %s: %v", def.objectID, err))
		}

		entries = append(entries, Entry{
			Topic: fmt.Sprintf("%s/%s/%s/%s/config",
				b.params.Prefix, def.component, b.params.DeviceID, def.objectID),
			Payload: data,
		})
	}

	return entries
}

// deviceBlock builds the shared device descriptor that groups all
// entities under one device in the consumer's UI.
func (b *Builder) deviceBlock() device {
	d := device{
		Identifiers:  []string{b.params.DeviceID},
		Name:         b.params.TopicID,
		Model:        deviceModel,
		Manufacturer: deviceManufacturer,
		SWVersion:    b.params.Version,
	}
	if b.params.LocalIP != "" {
		d.ConfigurationURL = fmt.Sprintf("http://%s", b.params.LocalIP)
	}
	return d
}

// payload is the flat Home Assistant entity descriptor. Optional fields
// carry omitempty so each component kind emits only what it uses.
type payload struct {
	Name              string `json:"name"`
	UniqueID          string `json:"unique_id"`
	StateTopic        string `json:"state_topic,omitempty"`
	CommandTopic      string `json:"command_topic,omitempty"`
	AvailabilityTopic string `json:"availability_topic"`
	ValueTemplate     string `json:"value_template,omitempty"`
	UnitOfMeasurement string `json:"unit_of_measurement,omitempty"`
	DeviceClass       string `json:"device_class,omitempty"`
	Icon              string `json:"icon,omitempty"`
	PayloadOn         string `json:"payload_on,omitempty"`
	PayloadOff        string `json:"payload_off,omitempty"`
	PayloadPress      string `json:"payload_press,omitempty"`
	Min               *int   `json:"min,omitempty"`
	Max               *int   `json:"max,omitempty"`
	Step              *int   `json:"step,omitempty"`
	Mode              string `json:"mode,omitempty"`
	Device            device `json:"device"`
}

// device is the shared device block.
type device struct {
	Identifiers      []string `json:"identifiers"`
	Name             string   `json:"name"`
	Model            string   `json:"model"`
	Manufacturer     string   `json:"manufacturer"`
	SWVersion        string   `json:"sw_version"`
	ConfigurationURL string   `json:"configuration_url,omitempty"`
}
