package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/config"
)

// SMSPilotClient sends messages through the smspilot.ru HTTP API.
// The gateway answers JSON; a send counts as delivered only when the
// response carries "success": true.
type SMSPilotClient struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

func NewSMSPilotClient(cfg config.SMSConfig) *SMSPilotClient {
	return &SMSPilotClient{
		apiKey: cfg.APIKey,
		apiURL: cfg.APIURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: cfg.ConnectTimeout,
				}).DialContext,
			},
		},
	}
}

var _ Sender = (*SMSPilotClient)(nil)

type smsPilotResponse struct {
	Success bool `json:"success"`
}

func (c *SMSPilotClient) Send(ctx context.Context, phone, message string) error {
	if c.apiKey == "" {
		return fmt.Errorf("sms api key is not configured")
	}

	form := url.Values{}
	form.Set("send", message)
	form.Set("to", phone)
	form.Set("apikey", c.apiKey)
	form.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read sms response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}

	var result smsPilotResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("malformed sms gateway response: %w", err)
	}

	if !result.Success {
		return fmt.Errorf("sms gateway reported failure")
	}

	log.Info().
		Str("phone", phone).
		Int("message_length", len(message)).
		Msg("SMS sent successfully")

	return nil
}
