package munbot

// Entity is one NLU-extracted entity on a turn.
type Entity struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Turn is one NLU turn posted to the webhook.
type Turn struct {
	Action   string            `json:"action"`
	Text     string            `json:"text,omitempty"`
	Intent   string            `json:"intent,omitempty"`
	Field    string            `json:"field,omitempty"`
	Entities []Entity          `json:"entities,omitempty"`
	Slots    map[string]string `json:"slots,omitempty"`
}

// Webhook action names.
const (
	ActionResolveDocument = "resolve_document"
	ActionListDocuments   = "list_documents"
	ActionFieldAnswer     = "field_answer"
	ActionNormalizeName   = "normalize_document_name"
)

// Message is one outbound bot message.
type Message struct {
	Text string `json:"text"`
}

// TurnResult carries the bot's ordered messages plus slot updates the caller
// should persist.
type TurnResult struct {
	Messages []Message         `json:"messages"`
	Slots    map[string]string `json:"slots,omitempty"`
}

// Answer is a resolved free-text question.
type Answer struct {
	Answer string  `json:"answer"`
	Source string  `json:"source"` // "document" or "model"
	Score  float64 `json:"score,omitempty"`
}

// Appointment is one bookable attention slot.
type Appointment struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Hour     string `json:"hour"`
	Official string `json:"official"`
	Status   string `json:"status"`
}

// BookingRequest reserves a slot.
type BookingRequest struct {
	ID       string `json:"id"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Whatsapp string `json:"whatsapp,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// Complaint is a citizen complaint.
type Complaint struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Area        string `json:"area,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   int64  `json:"created_at"`
}

// Health is the server health report.
type Health struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type processRequest struct {
	Question string `json:"question"`
}
