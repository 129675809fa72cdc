// Package munbot provides a small HTTP client for the munbot API: the NLU
// webhook, the question gateway, appointments, and complaints.
package munbot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// Client is the munbot SDK entry point.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a munbot Client for the given server base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("munbot: base URL required")
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Process sends a free-text question through the answer gateway.
func (c *Client) Process(ctx context.Context, question string) (Answer, error) {
	var out Answer
	err := c.do(ctx, http.MethodPost, "/process", processRequest{Question: question}, &out)
	if err != nil {
		return Answer{}, err
	}
	return out, nil
}

// Webhook posts one NLU turn and returns the bot's ordered messages.
func (c *Client) Webhook(ctx context.Context, turn Turn) (TurnResult, error) {
	var out TurnResult
	if err := c.do(ctx, http.MethodPost, "/webhook", turn, &out); err != nil {
		return TurnResult{}, err
	}
	return out, nil
}

// AvailableAppointments lists slots open for booking.
func (c *Client) AvailableAppointments(ctx context.Context) ([]Appointment, error) {
	var out struct {
		Items []Appointment `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/appointments/available", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// BookAppointment reserves a slot.
func (c *Client) BookAppointment(ctx context.Context, req BookingRequest) (Appointment, error) {
	var out Appointment
	if err := c.do(ctx, http.MethodPost, "/appointments", req, &out); err != nil {
		return Appointment{}, err
	}
	return out, nil
}

// ConfirmAppointment finalizes a pending booking.
func (c *Client) ConfirmAppointment(ctx context.Context, id string) (Appointment, error) {
	var out Appointment
	if err := c.do(ctx, http.MethodPost, "/appointments/"+id+"/confirm", nil, &out); err != nil {
		return Appointment{}, err
	}
	return out, nil
}

// OpenComplaint registers a new complaint with contact details.
func (c *Client) OpenComplaint(ctx context.Context, name, email string) (Complaint, error) {
	var out Complaint
	req := map[string]string{"name": name, "email": email}
	if err := c.do(ctx, http.MethodPost, "/complaints", req, &out); err != nil {
		return Complaint{}, err
	}
	return out, nil
}

// SetComplaintArea records the municipal area on a complaint. Pass "latest"
// as id to target the most recently opened complaint.
func (c *Client) SetComplaintArea(ctx context.Context, id, area string) (Complaint, error) {
	var out Complaint
	req := map[string]string{"area": area}
	if err := c.do(ctx, http.MethodPost, "/complaints/"+id+"/area", req, &out); err != nil {
		return Complaint{}, err
	}
	return out, nil
}

// SetComplaintDescription records the complaint text. Pass "latest" as id to
// target the most recently opened complaint.
func (c *Client) SetComplaintDescription(ctx context.Context, id, description string) (Complaint, error) {
	var out Complaint
	req := map[string]string{"description": description}
	if err := c.do(ctx, http.MethodPost, "/complaints/"+id+"/description", req, &out); err != nil {
		return Complaint{}, err
	}
	return out, nil
}

// DiscardComplaint deletes a complaint the citizen retracts. Pass "latest" as
// id to target the most recently opened complaint.
func (c *Client) DiscardComplaint(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/complaints/"+id, nil, nil)
}

// Health reports the server's component health.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var out Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return Health{}, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("munbot: marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("munbot: build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("munbot: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return parseAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("munbot: decode response: %w", err)
		}
	}
	return nil
}

func parseAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		var body struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &body) == nil && body.Code != "" {
			apiErr.Code = body.Code
			apiErr.Message = body.Message
			return apiErr
		}
		apiErr.Message = string(data)
	}
	return apiErr
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("munbot: API error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("munbot: API error %d: %s", e.StatusCode, e.Message)
}
