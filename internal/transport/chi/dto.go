package chi

// errorCode is the machine-readable error discriminator in error responses.
type errorCode string

const (
	codeBadRequest           errorCode = "bad_request"
	codeValidationFailed     errorCode = "validation_failed"
	codeMissingInput         errorCode = "missing_input"
	codeFieldNotFound        errorCode = "field_not_found"
	codeAppointmentNotFound  errorCode = "appointment_not_found"
	codeComplaintNotFound    errorCode = "complaint_not_found"
	codeSlotUnavailable      errorCode = "slot_unavailable"
	codeNoAnswer             errorCode = "no_answer"
	codeModelProviderError   errorCode = "model_provider_error"
	codeDataUnavailable      errorCode = "data_unavailable"
	codeInternalError        errorCode = "internal_error"
	codeUnauthorized         errorCode = "unauthorized"
	codeUnknownWebhookAction errorCode = "unknown_webhook_action"
)

// errorResponse is the uniform error body.
type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// Webhook action names accepted by POST /webhook.
const (
	actionResolveDocument = "resolve_document"
	actionListDocuments   = "list_documents"
	actionFieldAnswer     = "field_answer"
	actionNormalizeName   = "normalize_document_name"
)

type entityDTO struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// webhookRequest is one NLU turn posted by the dialogue engine.
type webhookRequest struct {
	Action   string            `json:"action"`
	Text     string            `json:"text,omitempty"`
	Intent   string            `json:"intent,omitempty"`
	Field    string            `json:"field,omitempty"`
	Entities []entityDTO       `json:"entities,omitempty"`
	Slots    map[string]string `json:"slots,omitempty"`
}

type messageDTO struct {
	Text string `json:"text"`
}

// webhookResponse carries the ordered outbound messages plus any slot values
// the dialogue engine should persist (e.g. the normalized document name).
type webhookResponse struct {
	Messages []messageDTO      `json:"messages"`
	Slots    map[string]string `json:"slots,omitempty"`
}

type processRequest struct {
	Question string `json:"question"`
}

type processResponse struct {
	Answer string  `json:"answer"`
	Source string  `json:"source"`
	Score  float64 `json:"score,omitempty"`
}

type appointmentDTO struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Hour     string `json:"hour"`
	Official string `json:"official"`
	Status   string `json:"status"`
}

type appointmentListResponse struct {
	Items []appointmentDTO `json:"items"`
}

type bookRequest struct {
	ID       string `json:"id"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Whatsapp string `json:"whatsapp,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

type complaintDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Area        string `json:"area,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   int64  `json:"created_at"`
}

type openComplaintRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type complaintAreaRequest struct {
	Area string `json:"area"`
}

type complaintDescriptionRequest struct {
	Description string `json:"description"`
}
