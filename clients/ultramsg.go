// Package clients holds the thin HTTP clients for the external services the
// bot talks to: UltraMsg for outbound WhatsApp messages and Groq for
// free-form replies.
package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const ultramsgTimeout = 60 * time.Second

// Ultramsg sends WhatsApp messages through the UltraMsg REST API.
type Ultramsg struct {
	BaseURL    string
	InstanceID string
	Token      string

	client *http.Client
}

func NewUltramsg(baseURL, instanceID, token string) *Ultramsg {
	return &Ultramsg{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		InstanceID: instanceID,
		Token:      token,
		client:     &http.Client{Timeout: ultramsgTimeout},
	}
}

// Send posts one text message. UltraMsg wants "to" without the @c.us suffix;
// digits-only or +55-prefixed both work.
func (u *Ultramsg) Send(ctx context.Context, phone, text string) error {
	endpoint := fmt.Sprintf("%s/%s/messages/chat?token=%s", u.BaseURL, u.InstanceID, url.QueryEscape(u.Token))

	form := url.Values{}
	form.Set("to", phone)
	form.Set("body", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := u.client.Do(req)
	if err != nil {
		return fmt.Errorf("ultramsg request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("ultramsg returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
