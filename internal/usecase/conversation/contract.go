package conversation

// Entity is one NLU-extracted entity from the current turn.
type Entity struct {
	Type  string
	Value string
}

// Turn is the per-turn payload supplied by the NLU collaborator. The core
// consumes only entities of the configured action type, the raw text, and
// slot values; intent names never reach the resolution engine.
type Turn struct {
	Text     string
	Intent   string
	Entities []Entity
	Slots    map[string]string
}

// Slot returns a slot value by name, or "".
func (t *Turn) Slot(name string) string {
	return t.Slots[name]
}

// EntityValues returns the values of every entity of the given type, in order.
func (t *Turn) EntityValues(entityType string) []string {
	var out []string
	for _, e := range t.Entities {
		if e.Type == entityType {
			out = append(out, e.Value)
		}
	}
	return out
}

// Message is one outbound text message. A single turn may produce several
// sequential messages; callers must preserve the order.
type Message struct {
	Text string `json:"text"`
}

func say(texts ...string) []Message {
	msgs := make([]Message, len(texts))
	for i, t := range texts {
		msgs[i] = Message{Text: t}
	}
	return msgs
}
