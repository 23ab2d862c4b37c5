package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// MaxMessageLength is the hard limit the SMS gateway enforces.
const MaxMessageLength = 150

const defaultFast2SMSURL = "https://www.fast2sms.com/dev/bulkV2"

// Truncate cuts a message down to the gateway limit.
func Truncate(message string) string {
	if len(message) > MaxMessageLength {
		return message[:MaxMessageLength]
	}
	return message
}

// Sender delivers an alert message to a phone number.
type Sender interface {
	SendSMS(ctx context.Context, phone, message string) error
}

// Fast2SMSClient sends quick-route SMS through the Fast2SMS bulk API.
type Fast2SMSClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type NewFast2SMSClientParams struct {
	ApiKey  string
	BaseURL string
	Timeout time.Duration
}

func NewFast2SMSClient(params NewFast2SMSClientParams) *Fast2SMSClient {
	if params.BaseURL == "" {
		params.BaseURL = defaultFast2SMSURL
	}
	if params.Timeout <= 0 {
		params.Timeout = 10 * time.Second
	}
	return &Fast2SMSClient{
		apiKey:     params.ApiKey,
		baseURL:    params.BaseURL,
		httpClient: &http.Client{Timeout: params.Timeout},
	}
}

type fast2SMSResponse struct {
	Return  bool   `json:"return"`
	Message any    `json:"message"`
	Request string `json:"request_id"`
}

// SendSMS delivers the message over the quick route. The gateway is
// strict about message length, so the text is truncated before sending.
func (c *Fast2SMSClient) SendSMS(ctx context.Context, phone, message string) error {
	if c.apiKey == "" {
		return fmt.Errorf("sms gateway api key not configured")
	}

	params := url.Values{}
	params.Set("authorization", c.apiKey)
	params.Set("route", "q")
	params.Set("message", Truncate(message))
	params.Set("numbers", phone)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("sms request failed: status %d: %s", resp.StatusCode, string(body))
	}

	var decoded fast2SMSResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("decode sms response: %w", err)
	}
	if !decoded.Return {
		return fmt.Errorf("sms gateway rejected message: %v", decoded.Message)
	}
	return nil
}
