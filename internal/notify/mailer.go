// Package notify sends the landed-guest email through the external email
// service. The Mailer interface keeps the side effect injectable so handlers
// can be tested without a live collaborator.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Name    string `json:"name"`
	Body    string `json:"message"`
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// HTTPMailer posts messages to the email service endpoint as JSON.
type HTTPMailer struct {
	endpoint string
	client   *http.Client
}

func NewHTTPMailer(endpoint string, client *http.Client) *HTTPMailer {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPMailer{
		endpoint: endpoint,
		client:   client,
	}
}

func (m *HTTPMailer) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("email service returned %d", resp.StatusCode)
	}
	return nil
}
