package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// WhatsApp delivers messages through the Meta Cloud API.
type WhatsApp struct {
	baseURL string
	phoneID string
	token   string
	client  *http.Client
	logger  *zap.Logger
}

// WhatsAppConfig holds the Meta Cloud API settings.
type WhatsAppConfig struct {
	BaseURL string // default https://graph.facebook.com/v19.0
	PhoneID string // sender phone number id
	Token   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewWhatsApp creates a WhatsApp notifier.
func NewWhatsApp(cfg *WhatsAppConfig) *WhatsApp {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://graph.facebook.com/v19.0"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &WhatsApp{
		baseURL: baseURL,
		phoneID: cfg.PhoneID,
		token:   cfg.Token,
		client:  &http.Client{Timeout: timeout},
		logger:  cfg.Logger,
	}
}

// Channel implements Notifier.
func (w *WhatsApp) Channel() string { return "whatsapp" }

type whatsappPayload struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             whatsappText `json:"text"`
}

type whatsappText struct {
	Body string `json:"body"`
}

// Send posts a text message to the Cloud API.
func (w *WhatsApp) Send(ctx context.Context, msg Message) error {
	payload := whatsappPayload{
		MessagingProduct: "whatsapp",
		To:               msg.To,
		Type:             "text",
		Text:             whatsappText{Body: msg.Body},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal whatsapp payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", w.baseURL, w.phoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build whatsapp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+w.token)

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("send whatsapp message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("whatsapp API error %d: %s", resp.StatusCode, string(detail))
	}

	w.logger.Debug("whatsapp reminder sent", zap.String("to", msg.To))
	return nil
}
