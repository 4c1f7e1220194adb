package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"jobdigest/internal/digest"
	"jobdigest/internal/model"
)

const sendGridSendURL = "https://api.sendgrid.com/v3/mail/send"

// Ensure EmailNotifier implements model.Notifier.
var _ model.Notifier = (*EmailNotifier)(nil)

// EmailNotifier renders the digest and delivers it as a single HTML email
// through the SendGrid v3 mail/send API. A failed send is returned to the
// caller; there is no retry beyond logging.
type EmailNotifier struct {
	apiKey     string
	from       string
	to         string
	subject    string
	sendURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewEmailNotifier returns a notifier that emails one digest per Notify call.
func NewEmailNotifier(apiKey, from, to, subject string, httpClient *http.Client, logger *slog.Logger) *EmailNotifier {
	return &EmailNotifier{
		apiKey:     apiKey,
		from:       from,
		to:         to,
		subject:    subject,
		sendURL:    sendGridSendURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Notify formats the postings into an HTML digest and sends it. An empty
// batch is a no-op: nothing new means no email.
func (n *EmailNotifier) Notify(postings []model.Posting) error {
	if len(postings) == 0 {
		return nil
	}

	html, err := digest.Render(postings)
	if err != nil {
		return fmt.Errorf("email notify: %w", err)
	}

	if err := n.send(html); err != nil {
		n.logger.Error("email send failed", "postings", len(postings), "error", err)
		return fmt.Errorf("email notify: %w", err)
	}

	n.logger.Info("digest email sent", "postings", len(postings), "to", n.to)
	return nil
}

func (n *EmailNotifier) send(htmlBody string) error {
	payload := sendGridPayload{
		Personalizations: []sendGridPersonalization{
			{To: []sendGridAddress{{Email: n.to}}},
		},
		From:    sendGridAddress{Email: n.from},
		Subject: n.subject,
		Content: []sendGridContent{
			{Type: "text/html", Value: htmlBody},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal sendgrid payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, n.sendURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sendgrid request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post to sendgrid: %w", err)
	}
	defer resp.Body.Close()

	// SendGrid answers 202 Accepted on success.
	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sendgrid returned %d", resp.StatusCode)
	}
	return nil
}

// SendGrid v3 mail/send payload types.

type sendGridPayload struct {
	Personalizations []sendGridPersonalization `json:"personalizations"`
	From             sendGridAddress           `json:"from"`
	Subject          string                    `json:"subject"`
	Content          []sendGridContent         `json:"content"`
}

type sendGridPersonalization struct {
	To []sendGridAddress `json:"to"`
}

type sendGridAddress struct {
	Email string `json:"email"`
}

type sendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// SendTestMessage sends a dummy posting through the notifier to verify the
// integration works end to end.
func SendTestMessage(n model.Notifier) error {
	return n.Notify([]model.Posting{{
		ID:       "test:jobdigest:001",
		Company:  "Jobdigest Test",
		Title:    "Test Notification",
		Location: "Remote - US",
		URL:      "https://example.com/jobs/test",
		Source:   "greenhouse",
	}})
}
