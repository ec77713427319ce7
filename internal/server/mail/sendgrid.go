package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const sendGridAPIURL = "https://api.sendgrid.com/v3/mail/send"

// SendGridClient sends OTP mail through the SendGrid v3 API. When a dynamic
// template id is configured the code is passed as template data; otherwise a
// plain-text message is sent.
type SendGridClient struct {
	apiKey     string
	fromEmail  string
	templateID string
	baseURL    string
	httpClient *http.Client
}

func NewSendGridClient(apiKey, fromEmail, templateID string) *SendGridClient {
	return &SendGridClient{
		apiKey:     apiKey,
		fromEmail:  fromEmail,
		templateID: templateID,
		baseURL:    sendGridAPIURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type personalization struct {
	To                  []emailAddress `json:"to"`
	DynamicTemplateData map[string]any `json:"dynamic_template_data,omitempty"`
}

type emailAddress struct {
	Email string `json:"email"`
}

type content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendMailReq struct {
	Personalizations []personalization `json:"personalizations"`
	From             emailAddress      `json:"from"`
	Subject          string            `json:"subject,omitempty"`
	TemplateID       string            `json:"template_id,omitempty"`
	Content          []content         `json:"content,omitempty"`
}

// SendOTP posts a mail/send request for the given address. Any non-2xx
// response is returned as an error with the response body attached, so the
// caller can surface delivery failure distinctly from other errors.
func (c *SendGridClient) SendOTP(ctx context.Context, toEmail, code string) error {
	reqBody := sendMailReq{
		From:    emailAddress{Email: c.fromEmail},
		Subject: "OTP for DigitalCrop",
	}

	p := personalization{To: []emailAddress{{Email: toEmail}}}
	if c.templateID != "" {
		p.DynamicTemplateData = map[string]any{"otp": code}
		reqBody.TemplateID = c.templateID
	} else {
		reqBody.Content = []content{{
			Type:  "text/plain",
			Value: fmt.Sprintf("Your one-time code is %s. It is valid for 5 minutes.", code),
		}}
	}
	reqBody.Personalizations = []personalization{p}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshalling mail request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("creating mail request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sendgrid error: status=%d body=%s", resp.StatusCode, string(body))
	}

	return nil
}
