package session

import "fmt"

// Topics builds the device-scoped topic strings.
//
// All topics hang off {base}/{topicID}; the topic id is the user-chosen
// device name, falling back to the stable device id.
type Topics struct {
	Base    string
	TopicID string
}

// Availability returns the retained online/offline topic.
func (t Topics) Availability() string {
	return fmt.Sprintf("%s/%s/availability", t.Base, t.TopicID)
}

// State returns the retained status-snapshot topic.
func (t Topics) State() string {
	return fmt.Sprintf("%s/%s/state", t.Base, t.TopicID)
}

// CommandFilter returns the wildcard subscription filter covering every
// command entity for this device.
func (t Topics) CommandFilter() string {
	return fmt.Sprintf("%s/%s/set/#", t.Base, t.TopicID)
}

// CommandPrefix returns the prefix stripped from inbound command topics
// to recover the entity token.
func (t Topics) CommandPrefix() string {
	return fmt.Sprintf("%s/%s/set/", t.Base, t.TopicID)
}
