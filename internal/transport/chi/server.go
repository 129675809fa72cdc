package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/publilab/munbot/internal/domain"
	answeruc "github.com/publilab/munbot/internal/usecase/answer"
	appointmentuc "github.com/publilab/munbot/internal/usecase/appointment"
	complaintuc "github.com/publilab/munbot/internal/usecase/complaint"
	"github.com/publilab/munbot/internal/usecase/conversation"
	healthuc "github.com/publilab/munbot/internal/usecase/health"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the bot's HTTP API: the NLU webhook, the question gateway,
// appointments, and complaints.
type Server struct {
	conversation  *conversation.Service
	answers       *answeruc.Service
	appointments  *appointmentuc.Service
	complaints    *complaintuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	conv *conversation.Service,
	answers *answeruc.Service,
	appointments *appointmentuc.Service,
	complaints *complaintuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		conversation: conv,
		answers:      answers,
		appointments: appointments,
		complaints:   complaints,
		health:       health,
		logger:       logger,
	}
	s.errorHandlers = []errorHandler{
		fieldNotFoundHandler,
		sentinelHandler(domain.ErrAppointmentNotFound, http.StatusNotFound, codeAppointmentNotFound),
		sentinelHandler(domain.ErrComplaintNotFound, http.StatusNotFound, codeComplaintNotFound),
		sentinelHandler(domain.ErrSlotUnavailable, http.StatusConflict, codeSlotUnavailable),
		sentinelHandler(domain.ErrMissingInput, http.StatusBadRequest, codeMissingInput),
		sentinelHandler(domain.ErrNoAnswer, http.StatusNotFound, codeNoAnswer),
		sentinelHandler(domain.ErrModelProviderError, http.StatusBadGateway, codeModelProviderError),
		sentinelHandler(domain.ErrDataUnavailable, http.StatusServiceUnavailable, codeDataUnavailable),
	}
	return s
}

// RegisterRoutes mounts every endpoint on the router. Middleware is the
// caller's concern.
func (s *Server) RegisterRoutes(r chirouter.Router) {
	r.Post("/webhook", s.Webhook)
	r.Post("/process", s.Process)
	r.Get("/appointments/available", s.ListAvailableAppointments)
	r.Post("/appointments", s.BookAppointment)
	r.Post("/appointments/{id}/confirm", s.ConfirmAppointment)
	r.Post("/complaints", s.OpenComplaint)
	r.Post("/complaints/{id}/area", s.SetComplaintArea)
	r.Post("/complaints/{id}/description", s.SetComplaintDescription)
	r.Delete("/complaints/{id}", s.DiscardComplaint)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Webhook handles POST /webhook: one NLU turn in, ordered messages out.
func (s *Server) Webhook(w http.ResponseWriter, r *http.Request) {
	var req webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	turn := turnFromRequest(&req)

	var (
		msgs  []conversation.Message
		slots map[string]string
	)
	switch req.Action {
	case actionResolveDocument:
		msgs = s.conversation.ResolveDocument(turn)
	case actionListDocuments:
		msgs = s.conversation.ListByClass(turn.Slot(conversation.SlotDocumentClass))
	case actionFieldAnswer:
		msgs = s.conversation.FieldAnswer(turn, domain.Field(req.Field))
	case actionNormalizeName:
		name, out := s.conversation.NormalizeDocumentName(turn)
		msgs = out
		if name != "" {
			slots = map[string]string{conversation.SlotDocumentName: name}
		}
	default:
		writeError(w, http.StatusBadRequest, codeUnknownWebhookAction,
			"unknown webhook action: "+req.Action)
		return
	}

	items := make([]messageDTO, len(msgs))
	for i, m := range msgs {
		items[i] = messageDTO{Text: m.Text}
	}
	writeJSON(w, http.StatusOK, webhookResponse{Messages: items, Slots: slots})
}

// Process handles POST /process: free-text question through the retrieval
// gateway with the model fallback.
func (s *Server) Process(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "question is required")
		return
	}

	res, err := s.answers.Answer(r.Context(), req.Question)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, processResponse{
		Answer: res.Text,
		Source: string(res.Source),
		Score:  res.Score,
	})
}

// ListAvailableAppointments handles GET /appointments/available.
func (s *Server) ListAvailableAppointments(w http.ResponseWriter, r *http.Request) {
	appts, err := s.appointments.ListAvailable(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]appointmentDTO, len(appts))
	for i := range appts {
		items[i] = appointmentToDTO(&appts[i])
	}
	writeJSON(w, http.StatusOK, appointmentListResponse{Items: items})
}

// BookAppointment handles POST /appointments.
func (s *Server) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "appointment id is required")
		return
	}

	appt, err := s.appointments.Book(r.Context(), req.ID, req.UserName, req.Email, req.Whatsapp, req.Reason)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, appointmentToDTO(&appt))
}

// ConfirmAppointment handles POST /appointments/{id}/confirm.
func (s *Server) ConfirmAppointment(w http.ResponseWriter, r *http.Request) {
	id := chirouter.URLParam(r, "id")

	appt, err := s.appointments.Confirm(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, appointmentToDTO(&appt))
}

// OpenComplaint handles POST /complaints.
func (s *Server) OpenComplaint(w http.ResponseWriter, r *http.Request) {
	var req openComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	c, err := s.complaints.Open(r.Context(), req.Name, req.Email)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, complaintToDTO(&c))
}

// SetComplaintArea handles POST /complaints/{id}/area. An id of "latest"
// targets the most recently opened complaint.
func (s *Server) SetComplaintArea(w http.ResponseWriter, r *http.Request) {
	var req complaintAreaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	c, err := s.complaints.SetArea(r.Context(), complaintID(r), req.Area)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, complaintToDTO(&c))
}

// SetComplaintDescription handles POST /complaints/{id}/description.
func (s *Server) SetComplaintDescription(w http.ResponseWriter, r *http.Request) {
	var req complaintDescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	c, err := s.complaints.SetDescription(r.Context(), complaintID(r), req.Description)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, complaintToDTO(&c))
}

// DiscardComplaint handles DELETE /complaints/{id}. An id of "latest" targets
// the most recently opened complaint.
func (s *Server) DiscardComplaint(w http.ResponseWriter, r *http.Request) {
	if _, err := s.complaints.Discard(r.Context(), complaintID(r)); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// complaintID maps the "latest" path segment to the empty id the service
// treats as "most recently opened".
func complaintID(r *http.Request) string {
	id := chirouter.URLParam(r, "id")
	if id == "latest" {
		return ""
	}
	return id
}

func turnFromRequest(req *webhookRequest) *conversation.Turn {
	entities := make([]conversation.Entity, len(req.Entities))
	for i, e := range req.Entities {
		entities[i] = conversation.Entity{Type: e.Type, Value: e.Value}
	}
	return &conversation.Turn{
		Text:     req.Text,
		Intent:   req.Intent,
		Entities: entities,
		Slots:    req.Slots,
	}
}

func appointmentToDTO(a *domain.Appointment) appointmentDTO {
	return appointmentDTO{
		ID:       a.ID(),
		Date:     a.Date(),
		Hour:     a.Hour(),
		Official: a.Official(),
		Status:   string(a.Status()),
	}
}

func complaintToDTO(c *domain.Complaint) complaintDTO {
	return complaintDTO{
		ID:          c.ID(),
		Name:        c.Name(),
		Email:       c.Email(),
		Area:        c.Area(),
		Description: c.Description(),
		CreatedAt:   c.CreatedAt(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrAppointmentNotFound,
		domain.ErrComplaintNotFound,
		domain.ErrSlotUnavailable,
		domain.ErrMissingInput,
		domain.ErrFieldNotFound,
		domain.ErrNoAnswer,
		domain.ErrModelProviderError,
		domain.ErrDataUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// fieldNotFoundHandler names the missing field and document in the response.
func fieldNotFoundHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrFieldNotFound) {
		return false
	}
	var fnf *domain.FieldNotFoundError
	if errors.As(err, &fnf) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"code":     codeFieldNotFound,
			"message":  msg,
			"field":    fnf.Field,
			"document": fnf.Document,
		})
		return true
	}
	writeError(w, http.StatusNotFound, codeFieldNotFound, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
